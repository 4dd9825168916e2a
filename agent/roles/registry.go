package roles

import (
	"fmt"

	contractx "github.com/wirelimit/visara/agent/contract"
	promptx "github.com/wirelimit/visara/agent/prompt"
	statex "github.com/wirelimit/visara/agent/state"
)

// summaryClipChars bounds the response excerpt appended to the rolling
// context after each turn.
const summaryClipChars = 200

type registryImpl struct {
	text   contractx.Role
	vision contractx.Role
}

func (r *registryImpl) Text() contractx.Role {
	return r.text
}

func (r *registryImpl) Vision() contractx.Role {
	return r.vision
}

// NewRegistry builds the closed role set against one session and one
// gateway. Role instructions come from the embedded prompt set.
func NewRegistry(session *statex.SessionState, gateway contractx.Gateway) (contractx.Registry, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session state is required", contractx.ErrValidation)
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: gateway is required", contractx.ErrValidation)
	}

	prompts := promptx.LoadPromptSet()
	return &registryImpl{
		text:   NewTextRole(session, gateway, prompts.TextRole),
		vision: NewVisionRole(session, gateway, prompts.VisionRole),
	}, nil
}

// enhancePrompt joins the fixed role instruction, the rolling context
// when present, and the labeled user query.
func enhancePrompt(instruction, contextText, queryLabel, query string) string {
	if contextText != "" {
		return fmt.Sprintf("%s\n\nConversation Context:\n%s\n\n%s: %s", instruction, contextText, queryLabel, query)
	}
	return fmt.Sprintf("%s\n\n%s: %s", instruction, queryLabel, query)
}

// clip keeps the first n runes, never splitting a multi-byte character.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func successPatch(response string) statex.RolePatch {
	return statex.RolePatch{
		Active:       statex.BoolPtr(true),
		LastResponse: statex.StringPtr(response),
	}
}

func failurePatch(msg string) statex.RolePatch {
	return statex.RolePatch{
		Active:       statex.BoolPtr(false),
		LastResponse: statex.StringPtr(msg),
	}
}
