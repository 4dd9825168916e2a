package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/text_role.txt
	textRoleRaw string

	//go:embed template/vision_role.txt
	visionRoleRaw string

	//go:embed template/synthesis.txt
	synthesisRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	TextRole   string
	VisionRole string
	Synthesis  string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		TextRole:   strings.TrimSpace(textRoleRaw),
		VisionRole: strings.TrimSpace(visionRoleRaw),
		Synthesis:  strings.TrimSpace(synthesisRaw),
	}
}
