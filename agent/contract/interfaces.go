package contract

import (
	"context"

	statex "github.com/wirelimit/visara/agent/state"
)

// Gateway is the external generation service. Both entry points fail
// with an error wrapping ErrGeneration; the agent layer converts every
// failure into a user-visible string at the role boundary.
type Gateway interface {
	GenerateText(ctx context.Context, prompt string, contextText string) (string, error)
	GenerateVision(ctx context.Context, prompt string, image statex.ImageHandle, contextText string) (string, error)
}

// Role is one processing unit of the closed {text, vision} set.
// Process never fails: error text is returned as the role's answer and
// recorded in the role's state.
type Role interface {
	Process(ctx context.Context, userText string, image *statex.ImageHandle) string
	Capabilities() []string
}

// Registry exposes the closed role set to the coordinator.
type Registry interface {
	Text() Role
	Vision() Role
}
