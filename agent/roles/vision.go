package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
)

const (
	// NoImageMessage is returned, without touching role state, when no
	// image is available anywhere in the session. Missing input is not
	// a failure.
	NoImageMessage = "No image provided. Please upload an image for visual analysis."

	// DefaultVisionQuery substitutes for blank text when an image is
	// present.
	DefaultVisionQuery = "Please describe this image in detail."
)

// VisionRole answers image queries through the gateway's vision entry
// point, falling back to the session's latest uploaded image when the
// turn carries none.
type VisionRole struct {
	session     *statex.SessionState
	gateway     contractx.Gateway
	instruction string
}

var visionCapabilities = []string{
	"Analyze images and photos",
	"Answer questions about visual content",
	"Describe image contents",
	"Identify objects, people, and scenes",
	"Read text from images (OCR)",
	"Compare multiple images",
}

func NewVisionRole(session *statex.SessionState, gateway contractx.Gateway, instruction string) *VisionRole {
	return &VisionRole{
		session:     session,
		gateway:     gateway,
		instruction: instruction,
	}
}

func (r *VisionRole) Capabilities() []string {
	return append([]string(nil), visionCapabilities...)
}

func (r *VisionRole) Process(ctx context.Context, userText string, image *statex.ImageHandle) string {
	img := image
	if img == nil {
		if latest, ok := r.session.LatestImage(); ok {
			img = &latest
		}
	}
	if img == nil {
		return NoImageMessage
	}

	query := strings.TrimSpace(userText)
	if query == "" {
		query = DefaultVisionQuery
	}

	contextText := r.session.RollingContext()
	prompt := enhancePrompt(r.instruction, contextText, "User Query about the image", query)

	log.Debug().Str("role", string(statex.RoleVision)).Str("image_id", img.ID).Msg("processing vision query")

	response, err := r.gateway.GenerateVision(ctx, prompt, *img, contextText)
	if err != nil {
		msg := fmt.Sprintf("Error processing image: %v", err)
		r.session.UpdateRoleState(statex.RoleVision, failurePatch(msg))
		return msg
	}

	r.session.UpdateRoleState(statex.RoleVision, successPatch(response))
	r.session.AppendContext(fmt.Sprintf("User asked about image: %s\nVision analysis: %s...", userText, clip(response, summaryClipChars)))
	return response
}
