package turnnode

import (
	"context"
	"fmt"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
)

// DispatchRoles routes the turn per the classification. Roles never
// fail; their answers (including error text) land in the state. For
// vision_with_text the vision answer is folded into an augmented
// prompt for the text role, and the combined reply is left to the
// synthesis node.
func DispatchRoles(ctx context.Context, in *TurnState, registry contractx.Registry) (*TurnState, error) {
	if in == nil {
		return nil, ErrNilTurnState
	}

	switch in.Decision {
	case statex.DecisionTextOnly:
		in.Reply = registry.Text().Process(ctx, in.Text, nil)
		in.RolesUsed = []statex.RoleID{statex.RoleText}

	case statex.DecisionVisionPrimary:
		in.Reply = registry.Vision().Process(ctx, in.Text, in.Image)
		in.RolesUsed = []statex.RoleID{statex.RoleVision}

	case statex.DecisionVisionWithText:
		in.VisionAnswer = registry.Vision().Process(ctx, in.Text, in.Image)
		augmented := fmt.Sprintf("Based on this image analysis: %s\n\nUser's additional question: %s", in.VisionAnswer, in.Text)
		in.TextAnswer = registry.Text().Process(ctx, augmented, nil)
		in.RolesUsed = []statex.RoleID{statex.RoleVision, statex.RoleText}

	default:
		return nil, fmt.Errorf("%w: unknown decision %q", contractx.ErrValidation, in.Decision)
	}

	return in, nil
}
