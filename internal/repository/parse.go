package repository

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"intake-assistant/backend/internal/model"
)

var (
	providerHeader = regexp.MustCompile(`(?i)^prov_\d+\t`)
	// "Name — Type", where Type is a single word.
	providerTitle = regexp.MustCompile(`^(.*?)\s+—\s+(\w+)`)
	telehealthYes = regexp.MustCompile(`(?i)yes`)
)

// ParseProviders reads the tab-delimited provider directory. A record starts
// with a "prov_### <TAB> Name — Type" header and continues with indented
// "Label: a, b, c" lines. Lines before the first header are ignored.
func ParseProviders(r io.Reader) ([]model.ProviderRecord, error) {
	var (
		out []model.ProviderRecord
		cur *model.ProviderRecord
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if providerHeader.MatchString(line) {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = parseProviderHeader(line)
			continue
		}
		if cur == nil {
			continue
		}

		text := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(text, "Styles:"):
			cur.Styles = splitList(text, "Styles:")
		case strings.HasPrefix(text, "Lived experience:"):
			cur.LivedExp = splitList(text, "Lived experience:")
		case strings.HasPrefix(text, "Languages:"):
			cur.Languages = splitList(text, "Languages:")
		case strings.HasPrefix(text, "Licensed states:"):
			cur.LicensedStates = splitList(text, "Licensed states:")
		case strings.HasPrefix(text, "Insurance:"):
			cur.Insurance = splitList(text, "Insurance:")
		case strings.HasPrefix(text, "Email:"):
			cur.Email = strings.TrimSpace(strings.TrimPrefix(text, "Email:"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read providers: %w", err)
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out, nil
}

func parseProviderHeader(line string) *model.ProviderRecord {
	id, rest, _ := strings.Cut(line, "\t")
	rec := &model.ProviderRecord{
		ID:             strings.TrimSpace(id),
		Name:           strings.TrimSpace(rest),
		Type:           model.ProviderTherapy,
		Styles:         []string{},
		LivedExp:       []string{},
		Languages:      []string{},
		LicensedStates: []string{},
		Insurance:      []string{},
	}
	if m := providerTitle.FindStringSubmatch(rest); m != nil {
		rec.Name = strings.TrimSpace(m[1])
		rec.Type = strings.TrimSpace(m[2])
	}
	return rec
}

func splitList(text, label string) []string {
	parts := strings.Split(strings.TrimPrefix(text, label), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseSchedule reads the pipe-delimited schedule:
// slot_id | prov_id | Name | Type | window | Telehealth Only: Yes.
// Lines with fewer than six fields are skipped.
func ParseSchedule(r io.Reader) ([]model.ScheduleSlot, error) {
	var out []model.ScheduleSlot

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 6 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		out = append(out, model.ScheduleSlot{
			SlotID:       parts[0],
			ProviderID:   parts[1],
			ProviderName: parts[2],
			Type:         parts[3],
			Window:       parts[4],
			Telehealth:   telehealthYes.MatchString(parts[5]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read schedule: %w", err)
	}
	return out, nil
}
