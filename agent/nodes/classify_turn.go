package turnnode

import (
	"strings"

	statex "github.com/wirelimit/visara/agent/state"
)

// visionKeywords marks a query as image-directed. Matching is
// case-insensitive substring over the raw user text, phrases included,
// so e.g. "sees" matches "see". That looseness is inherited behavior
// and is pinned by tests; do not tighten it to word boundaries.
var visionKeywords = []string{
	"image", "picture", "photo", "see", "look", "visual",
	"describe", "analyze", "identify", "what is", "what are",
}

// ClassifyTurn decides which role(s) handle the turn. Three outcomes:
// no image is always text_only; with an image, blank or image-directed
// text is vision_primary, anything else is vision_with_text.
func ClassifyTurn(in TurnInput) (*TurnState, error) {
	return &TurnState{
		Text:     in.Text,
		Image:    in.Image,
		Decision: Classify(in.Text, in.Image != nil),
	}, nil
}

func Classify(userText string, hasImage bool) statex.Decision {
	if !hasImage {
		return statex.DecisionTextOnly
	}
	if strings.TrimSpace(userText) == "" || containsVisionKeyword(userText) {
		return statex.DecisionVisionPrimary
	}
	return statex.DecisionVisionWithText
}

func containsVisionKeyword(userText string) bool {
	lowered := strings.ToLower(userText)
	for _, kw := range visionKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
