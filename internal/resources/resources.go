// Package resources provides the text files the assistant is configured with:
// the system prompt, FAQ and policy notes, and the provider and schedule
// lookups. Defaults are embedded in the binary; a directory on disk can be
// used instead.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	SystemPromptFile = "system_prompt.txt"
	FAQFile          = "faqs.txt"
	PoliciesFile     = "policies.txt"
	ProvidersFile    = "providers.txt"
	ScheduleFile     = "schedule.txt"

	// DefaultSystemPrompt is used when system_prompt.txt is missing or empty.
	DefaultSystemPrompt = "You are a helpful intake assistant."

	faqHeading    = "# FAQ (for quick reference; summarize when answering)"
	policyHeading = "# Policy notes (adhere to these)"
)

//go:embed defaults/*.txt
var defaultsFS embed.FS

// Open returns the resource filesystem rooted at dir, or the embedded
// defaults when dir is empty.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		sub, err := fs.Sub(defaultsFS, "defaults")
		if err != nil {
			return nil, fmt.Errorf("could not open embedded resources: %w", err)
		}
		return sub, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open resources directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resources path %q is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// ReadOptional returns the trimmed contents of name, or "" when it does not exist.
func ReadOptional(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// BuildSystemPrompt assembles the system turn from the prompt, FAQ and
// policy files. The FAQ and policy sections are only added when their files
// have content.
func BuildSystemPrompt(fsys fs.FS) (string, error) {
	prompt, err := ReadOptional(fsys, SystemPromptFile)
	if err != nil {
		return "", err
	}
	faqs, err := ReadOptional(fsys, FAQFile)
	if err != nil {
		return "", err
	}
	policies, err := ReadOptional(fsys, PoliciesFile)
	if err != nil {
		return "", err
	}

	var sections []string
	if prompt != "" {
		sections = append(sections, prompt)
	}
	if faqs != "" {
		sections = append(sections, faqHeading+"\n"+faqs)
	}
	if policies != "" {
		sections = append(sections, policyHeading+"\n"+policies)
	}
	if len(sections) == 0 {
		return DefaultSystemPrompt, nil
	}
	return strings.Join(sections, "\n\n"), nil
}
