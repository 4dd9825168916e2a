package roles

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
)

// TextRole answers text-only queries through the gateway's text entry
// point, enriched with the session's rolling context.
type TextRole struct {
	session     *statex.SessionState
	gateway     contractx.Gateway
	instruction string
}

var textCapabilities = []string{
	"Answer general questions",
	"Provide explanations",
	"Generate text content",
	"Analyze text data",
	"Provide recommendations",
}

func NewTextRole(session *statex.SessionState, gateway contractx.Gateway, instruction string) *TextRole {
	return &TextRole{
		session:     session,
		gateway:     gateway,
		instruction: instruction,
	}
}

func (r *TextRole) Capabilities() []string {
	return append([]string(nil), textCapabilities...)
}

// Process never fails: a generation error becomes the returned answer
// and flips the role inactive.
func (r *TextRole) Process(ctx context.Context, userText string, _ *statex.ImageHandle) string {
	contextText := r.session.RollingContext()
	prompt := enhancePrompt(r.instruction, contextText, "User Query", userText)

	log.Debug().Str("role", string(statex.RoleText)).Msg("processing text query")

	response, err := r.gateway.GenerateText(ctx, prompt, contextText)
	if err != nil {
		msg := fmt.Sprintf("Error processing text input: %v", err)
		r.session.UpdateRoleState(statex.RoleText, failurePatch(msg))
		return msg
	}

	r.session.UpdateRoleState(statex.RoleText, successPatch(response))
	r.session.AppendContext(fmt.Sprintf("User asked: %s\nAgent responded: %s...", userText, clip(response, summaryClipChars)))
	return response
}
