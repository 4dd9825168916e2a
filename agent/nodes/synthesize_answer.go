package turnnode

import (
	"context"
	"fmt"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
)

// SynthesisBanner prefixes a gateway-synthesized combined answer.
const SynthesisBanner = "**Comprehensive Analysis:**"

// SynthesizeAnswer combines the two role answers of a vision_with_text
// turn into one reply. The gateway call is best-effort: on failure the
// reply degrades to a deterministic labeled concatenation, so this
// node itself never fails a turn it applies to.
func SynthesizeAnswer(ctx context.Context, in *TurnState, gateway contractx.Gateway, template string) (*TurnState, error) {
	if in == nil {
		return nil, ErrNilTurnState
	}
	if in.Decision != statex.DecisionVisionWithText {
		return in, nil
	}

	prompt := fmt.Sprintf(template, in.Text, in.VisionAnswer, in.TextAnswer)
	out, err := gateway.GenerateText(ctx, prompt, "")
	if err != nil {
		in.Reply = FallbackCombine(in.VisionAnswer, in.TextAnswer)
		return in, nil
	}

	in.Reply = SynthesisBanner + "\n\n" + out
	return in, nil
}

// FallbackCombine is the deterministic synthesis fallback.
func FallbackCombine(visionAnswer, textAnswer string) string {
	return fmt.Sprintf("**Visual Analysis:**\n%s\n\n**Additional Analysis:**\n%s", visionAnswer, textAnswer)
}
