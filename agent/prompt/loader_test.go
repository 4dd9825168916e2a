package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()

	for name, content := range map[string]string{
		"text role":   set.TextRole,
		"vision role": set.VisionRole,
		"synthesis":   set.Synthesis,
	} {
		if content == "" {
			t.Fatalf("%s prompt is empty", name)
		}
		if content != strings.TrimSpace(content) {
			t.Fatalf("%s prompt not trimmed", name)
		}
	}
}

func TestSynthesisPromptVerbs(t *testing.T) {
	t.Parallel()

	// Filled with query, vision answer, text answer, in that order.
	if got := strings.Count(LoadPromptSet().Synthesis, "%s"); got != 3 {
		t.Fatalf("synthesis prompt has %d format verbs, want 3", got)
	}
}
