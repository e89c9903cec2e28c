package resources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt(t *testing.T) {
	testCases := []struct {
		name     string
		files    fstest.MapFS
		expected string
	}{
		{
			name: "All sections",
			files: fstest.MapFS{
				SystemPromptFile: {Data: []byte("Be kind.\n")},
				FAQFile:          {Data: []byte("Q: hours?\nA: 9-5\n")},
				PoliciesFile:     {Data: []byte("  No diagnosis.  ")},
			},
			expected: "Be kind.\n\n" +
				"# FAQ (for quick reference; summarize when answering)\nQ: hours?\nA: 9-5\n\n" +
				"# Policy notes (adhere to these)\nNo diagnosis.",
		},
		{
			name:     "Prompt only",
			files:    fstest.MapFS{SystemPromptFile: {Data: []byte("Be kind.")}, FAQFile: {Data: []byte("   \n")}},
			expected: "Be kind.",
		},
		{
			name:     "Nothing present falls back to default",
			files:    fstest.MapFS{},
			expected: DefaultSystemPrompt,
		},
		{
			name:     "Policies without prompt",
			files:    fstest.MapFS{PoliciesFile: {Data: []byte("No diagnosis.")}},
			expected: "# Policy notes (adhere to these)\nNo diagnosis.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prompt, err := BuildSystemPrompt(tc.files)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, prompt)
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("Embedded defaults", func(t *testing.T) {
		fsys, err := Open("")
		require.NoError(t, err)

		for _, name := range []string{SystemPromptFile, FAQFile, PoliciesFile, ProvidersFile, ScheduleFile} {
			text, err := ReadOptional(fsys, name)
			require.NoError(t, err)
			assert.NotEmpty(t, text, name)
		}

		prompt, err := BuildSystemPrompt(fsys)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "You are the intake assistant"))
		assert.Contains(t, prompt, faqHeading)
		assert.Contains(t, prompt, policyHeading)
	})

	t.Run("Directory override", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, SystemPromptFile), []byte("Custom prompt"), 0o600))

		fsys, err := Open(dir)
		require.NoError(t, err)

		prompt, err := BuildSystemPrompt(fsys)
		require.NoError(t, err)
		assert.Equal(t, "Custom prompt", prompt)
	})

	t.Run("Missing directory", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("File instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		_, err := Open(path)
		assert.Error(t, err)
	})
}
