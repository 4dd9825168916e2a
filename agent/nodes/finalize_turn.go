package turnnode

import (
	"strings"

	statex "github.com/wirelimit/visara/agent/state"
)

// UnroutableMessage covers the empty-reply edge; with three total
// classifications it is normally unreachable.
const UnroutableMessage = "Unable to determine how to process this request."

func FinalizeTurn(in *TurnState) (TurnOutput, error) {
	if in == nil {
		return TurnOutput{}, ErrNilTurnState
	}

	reply := in.Reply
	if strings.TrimSpace(reply) == "" {
		reply = UnroutableMessage
	}

	return TurnOutput{
		Reply:     reply,
		Decision:  in.Decision,
		RolesUsed: append([]statex.RoleID(nil), in.RolesUsed...),
	}, nil
}
