// Package coordinator classifies each turn, routes it to the text
// and/or vision role, synthesizes combined answers, and reports the
// outcome. A turn never fails outward: every error path is folded into
// the returned string.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/wirelimit/visara/agent/contract"
	nodex "github.com/wirelimit/visara/agent/nodes"
	promptx "github.com/wirelimit/visara/agent/prompt"
	statex "github.com/wirelimit/visara/agent/state"
)

var coordinatorCapabilities = []string{
	"Route queries to appropriate agents",
	"Coordinate multi-agent responses",
	"Manage conversation flow",
	"Handle complex multi-modal inputs",
	"Maintain system state",
}

type Coordinator struct {
	session *statex.SessionState
	roles   contractx.Registry
	gateway contractx.Gateway

	graphRunner       compose.Runnable[nodex.TurnInput, nodex.TurnOutput]
	synthesisTemplate string

	now func() time.Time
}

// TurnResult is one completed turn from the caller's perspective. The
// caller owns appending it to the interaction log.
type TurnResult struct {
	Reply     string
	Decision  statex.Decision
	RolesUsed []statex.RoleID
}

func New(session *statex.SessionState, roles contractx.Registry, gateway contractx.Gateway) (*Coordinator, error) {
	if session == nil {
		return nil, errors.New("session state is required")
	}
	if roles == nil {
		return nil, errors.New("role registry is required")
	}
	if gateway == nil {
		return nil, errors.New("generation gateway is required")
	}

	c := &Coordinator{
		session:           session,
		roles:             roles,
		gateway:           gateway,
		synthesisTemplate: promptx.LoadPromptSet().Synthesis,
		now:               time.Now,
	}

	graphRunner, err := c.compileProcessTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.graphRunner = graphRunner

	return c, nil
}

// Process runs one turn and always returns a string; any pipeline
// failure marks the coordinator inactive and becomes the reply.
func (c *Coordinator) Process(ctx context.Context, userText string, image *statex.ImageHandle) string {
	return c.ProcessTurn(ctx, userText, image).Reply
}

// ProcessTurn is Process plus the routing outcome, so callers can
// record which roles produced the response.
func (c *Coordinator) ProcessTurn(ctx context.Context, userText string, image *statex.ImageHandle) TurnResult {
	out, err := c.graphRunner.Invoke(ctx, nodex.TurnInput{
		Text:  userText,
		Image: image,
	})
	if err != nil {
		log.Error().Err(err).Msg("coordinator turn failed")
		c.session.UpdateRoleState(statex.RoleCoordinator, statex.RolePatch{
			Active:       statex.BoolPtr(false),
			LastDecision: statex.DecisionPtr(statex.DecisionError),
		})
		return TurnResult{
			Reply:    fmt.Sprintf("Coordinator error: %v", err),
			Decision: statex.DecisionError,
		}
	}

	return TurnResult{
		Reply:     out.Reply,
		Decision:  out.Decision,
		RolesUsed: out.RolesUsed,
	}
}

// RoleStatus is one role's observable status.
type RoleStatus struct {
	Active       bool            `json:"active"`
	LastDecision statex.Decision `json:"last_decision,omitempty"`
}

type SystemStatus struct {
	Coordinator RoleStatus `json:"coordinator"`
	TextRole    RoleStatus `json:"text_role"`
	VisionRole  RoleStatus `json:"vision_role"`
	TotalRoles  int        `json:"total_roles"`
	ActiveRoles int        `json:"active_roles"`
}

func (c *Coordinator) SystemStatus() SystemStatus {
	coord := c.session.RoleStateFor(statex.RoleCoordinator)
	text := c.session.RoleStateFor(statex.RoleText)
	vision := c.session.RoleStateFor(statex.RoleVision)

	status := SystemStatus{
		Coordinator: RoleStatus{Active: coord.Active, LastDecision: coord.LastDecision},
		TextRole:    RoleStatus{Active: text.Active},
		VisionRole:  RoleStatus{Active: vision.Active},
		TotalRoles:  3,
	}
	for _, active := range []bool{coord.Active, text.Active, vision.Active} {
		if active {
			status.ActiveRoles++
		}
	}
	return status
}

// CapabilitiesSummary lists each role's static capabilities.
// Informational only.
func (c *Coordinator) CapabilitiesSummary() map[statex.RoleID][]string {
	return map[statex.RoleID][]string{
		statex.RoleCoordinator: append([]string(nil), coordinatorCapabilities...),
		statex.RoleText:        c.roles.Text().Capabilities(),
		statex.RoleVision:      c.roles.Vision().Capabilities(),
	}
}

// Reset clears history, rolling context, and uploaded images in one
// step. Role-state records survive.
func (c *Coordinator) Reset() {
	c.session.ClearAll(c.now())
}
