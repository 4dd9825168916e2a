// Package turnnode holds the coordinator's turn-pipeline nodes. Each
// node is one step of the compiled graph and carries its work in a
// TurnState.
package turnnode

import (
	"errors"

	statex "github.com/wirelimit/visara/agent/state"
)

var ErrNilTurnState = errors.New("turn state is nil")

type TurnInput struct {
	Text  string
	Image *statex.ImageHandle
}

type TurnOutput struct {
	Reply     string
	Decision  statex.Decision
	RolesUsed []statex.RoleID
}

type TurnState struct {
	Text  string
	Image *statex.ImageHandle

	Decision  statex.Decision
	RolesUsed []statex.RoleID

	VisionAnswer string
	TextAnswer   string
	Reply        string
}
