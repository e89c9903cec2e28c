package service

import (
	"regexp"
	"strings"
)

// informationSeeking matches questions about coverage, scheduling and the
// kinds of care offered. Matching is on word prefixes so "insured",
// "scheduling" and "psychiatrists" are covered by their stems.
var informationSeeking = regexp.MustCompile(`\b(` + strings.Join([]string{
	// insurance and cost
	"insur", "coverage", "covered", "cover", "copay", "co-pay", "deductible", "in-network", "network",
	"out-of-network", "medicaid", "medicare", "ahcccs", "aetna", "cigna", "unitedhealth", "bcbs",
	"blue cross", "self-pay", "sliding scale", "cost", "price", `fees?\b`, `bill(s|ing|ed)?\b`,
	// scheduling
	"schedul", "appointment", "appt", "availab", "book", "slot", "opening", "reschedul", "cancel",
	"wait list", "waitlist", "hours", "telehealth", "virtual", "video visit", "in-person", "location",
	// clinical providers and services
	"therap", "psychiatr", "counsel", "provider", "clinician", "prescri", "medication",
	"med management", "evaluation", "intake", "lpc", "lcsw", "lmft", "pmhnp", "emdr", "cbt", "dbt",
	"faq", "policy", "policies",
}, "|") + `)`)

// IsInformationSeeking reports whether message asks about insurance,
// scheduling or clinical services, the topics covered by the search index.
func IsInformationSeeking(message string) bool {
	return informationSeeking.MatchString(strings.ToLower(message))
}
