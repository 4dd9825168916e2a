package turnnode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	contractx "github.com/wirelimit/visara/agent/contract"
	statex "github.com/wirelimit/visara/agent/state"
)

type fakeRole struct {
	reply string
	calls []string
}

func (f *fakeRole) Process(ctx context.Context, userText string, image *statex.ImageHandle) string {
	f.calls = append(f.calls, userText)
	return f.reply
}

func (f *fakeRole) Capabilities() []string {
	return []string{"fake"}
}

type fakeRegistry struct {
	text   *fakeRole
	vision *fakeRole
}

func (f *fakeRegistry) Text() contractx.Role   { return f.text }
func (f *fakeRegistry) Vision() contractx.Role { return f.vision }

type fakeGateway struct {
	textOut string
	textErr error
	prompts []string
}

func (f *fakeGateway) GenerateText(ctx context.Context, prompt string, contextText string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.textOut, nil
}

func (f *fakeGateway) GenerateVision(ctx context.Context, prompt string, image statex.ImageHandle, contextText string) (string, error) {
	return "", errors.New("vision entry point must not be used for synthesis")
}

func TestDispatchRolesTextOnly(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{text: &fakeRole{reply: "paris"}, vision: &fakeRole{reply: "unused"}}
	st, err := DispatchRoles(context.Background(), &TurnState{
		Text:     "What's the capital of France?",
		Decision: statex.DecisionTextOnly,
	}, reg)
	if err != nil {
		t.Fatalf("DispatchRoles() error = %v", err)
	}

	if st.Reply != "paris" {
		t.Fatalf("Reply = %q, want %q", st.Reply, "paris")
	}
	if len(reg.text.calls) != 1 {
		t.Fatalf("text role called %d times, want 1", len(reg.text.calls))
	}
	if len(reg.vision.calls) != 0 {
		t.Fatalf("vision role called %d times, want 0", len(reg.vision.calls))
	}
	if len(st.RolesUsed) != 1 || st.RolesUsed[0] != statex.RoleText {
		t.Fatalf("RolesUsed = %v, want [text]", st.RolesUsed)
	}
}

func TestDispatchRolesVisionPrimary(t *testing.T) {
	t.Parallel()

	img := statex.NewImage("p.jpg", "image/jpeg", []byte{1})
	reg := &fakeRegistry{text: &fakeRole{reply: "unused"}, vision: &fakeRole{reply: "a dog"}}

	st, err := DispatchRoles(context.Background(), &TurnState{
		Text:     "",
		Image:    &img,
		Decision: statex.DecisionVisionPrimary,
	}, reg)
	if err != nil {
		t.Fatalf("DispatchRoles() error = %v", err)
	}

	if st.Reply != "a dog" {
		t.Fatalf("Reply = %q, want %q", st.Reply, "a dog")
	}
	if len(reg.vision.calls) != 1 || len(reg.text.calls) != 0 {
		t.Fatalf("calls: vision=%d text=%d, want 1/0", len(reg.vision.calls), len(reg.text.calls))
	}
}

func TestDispatchRolesVisionWithText(t *testing.T) {
	t.Parallel()

	img := statex.NewImage("p.jpg", "image/jpeg", []byte{1})
	reg := &fakeRegistry{text: &fakeRole{reply: "it matters"}, vision: &fakeRole{reply: "a red bicycle"}}

	st, err := DispatchRoles(context.Background(), &TurnState{
		Text:     "Why does this matter to me?",
		Image:    &img,
		Decision: statex.DecisionVisionWithText,
	}, reg)
	if err != nil {
		t.Fatalf("DispatchRoles() error = %v", err)
	}

	if len(reg.vision.calls) != 1 || len(reg.text.calls) != 1 {
		t.Fatalf("calls: vision=%d text=%d, want 1/1", len(reg.vision.calls), len(reg.text.calls))
	}
	augmented := reg.text.calls[0]
	if !strings.Contains(augmented, "a red bicycle") {
		t.Fatalf("augmented prompt missing vision answer: %q", augmented)
	}
	if !strings.Contains(augmented, "Why does this matter to me?") {
		t.Fatalf("augmented prompt missing original question: %q", augmented)
	}
	if st.Reply != "" {
		t.Fatalf("Reply = %q before synthesis, want empty", st.Reply)
	}
	if st.VisionAnswer != "a red bicycle" || st.TextAnswer != "it matters" {
		t.Fatalf("answers not carried: vision=%q text=%q", st.VisionAnswer, st.TextAnswer)
	}
}

func TestDispatchRolesUnknownDecision(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{text: &fakeRole{}, vision: &fakeRole{}}
	_, err := DispatchRoles(context.Background(), &TurnState{Decision: statex.Decision("bogus")}, reg)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("DispatchRoles() error = %v, want ErrValidation", err)
	}
}

func TestSynthesizeAnswerBanner(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{textOut: "combined answer"}
	st, err := SynthesizeAnswer(context.Background(), &TurnState{
		Text:         "Why does this matter?",
		Decision:     statex.DecisionVisionWithText,
		VisionAnswer: "a red bicycle",
		TextAnswer:   "it matters",
	}, gw, "q: %s v: %s t: %s")
	if err != nil {
		t.Fatalf("SynthesizeAnswer() error = %v", err)
	}

	want := SynthesisBanner + "\n\ncombined answer"
	if st.Reply != want {
		t.Fatalf("Reply = %q, want %q", st.Reply, want)
	}
	if len(gw.prompts) != 1 {
		t.Fatalf("gateway called %d times, want 1", len(gw.prompts))
	}
	prompt := gw.prompts[0]
	for _, part := range []string{"Why does this matter?", "a red bicycle", "it matters"} {
		if !strings.Contains(prompt, part) {
			t.Fatalf("synthesis prompt missing %q: %q", part, prompt)
		}
	}
}

func TestSynthesizeAnswerFallbackNeverFails(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{textErr: fmt.Errorf("%w: upstream down", contractx.ErrGeneration)}
	st, err := SynthesizeAnswer(context.Background(), &TurnState{
		Text:         "Why?",
		Decision:     statex.DecisionVisionWithText,
		VisionAnswer: "vision says",
		TextAnswer:   "text says",
	}, gw, "q: %s v: %s t: %s")
	if err != nil {
		t.Fatalf("SynthesizeAnswer() error = %v", err)
	}

	want := FallbackCombine("vision says", "text says")
	if st.Reply != want {
		t.Fatalf("Reply = %q, want fallback %q", st.Reply, want)
	}
	if !strings.Contains(st.Reply, "**Visual Analysis:**") || !strings.Contains(st.Reply, "**Additional Analysis:**") {
		t.Fatalf("fallback missing section labels: %q", st.Reply)
	}
}

func TestSynthesizeAnswerSkipsOtherDecisions(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{textOut: "should not be used"}
	st, err := SynthesizeAnswer(context.Background(), &TurnState{
		Decision: statex.DecisionTextOnly,
		Reply:    "already answered",
	}, gw, "%s %s %s")
	if err != nil {
		t.Fatalf("SynthesizeAnswer() error = %v", err)
	}
	if st.Reply != "already answered" {
		t.Fatalf("Reply = %q, want untouched", st.Reply)
	}
	if len(gw.prompts) != 0 {
		t.Fatalf("gateway called %d times for non-synthesis turn, want 0", len(gw.prompts))
	}
}

func TestRecordDecision(t *testing.T) {
	t.Parallel()

	session := statex.NewSessionState("s1", time.Now())
	if _, err := RecordDecision(&TurnState{Decision: statex.DecisionVisionPrimary}, session); err != nil {
		t.Fatalf("RecordDecision() error = %v", err)
	}

	got := session.RoleStateFor(statex.RoleCoordinator)
	if !got.Active || got.LastDecision != statex.DecisionVisionPrimary {
		t.Fatalf("coordinator state = %+v, want active with vision_primary", got)
	}
}
