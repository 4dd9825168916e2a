package coordinator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/wirelimit/visara/agent/nodes"
)

func (c *Coordinator) compileProcessTurnGraph(
	ctx context.Context,
) (compose.Runnable[nodex.TurnInput, nodex.TurnOutput], error) {
	graph := compose.NewGraph[nodex.TurnInput, nodex.TurnOutput]()

	if err := graph.AddLambdaNode("classify_turn",
		compose.InvokableLambda(func(ctx context.Context, in nodex.TurnInput) (*nodex.TurnState, error) {
			return nodex.ClassifyTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_turn: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_roles",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.DispatchRoles(ctx, in, c.roles)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_roles: %w", err)
	}

	if err := graph.AddLambdaNode("synthesize_answer",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.SynthesizeAnswer(ctx, in, c.gateway, c.synthesisTemplate)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node synthesize_answer: %w", err)
	}

	if err := graph.AddLambdaNode("record_decision",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (*nodex.TurnState, error) {
			return nodex.RecordDecision(in, c.session)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_decision: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_turn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.TurnState) (nodex.TurnOutput, error) {
			return nodex.FinalizeTurn(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_turn: %w", err)
	}

	edges := [][2]string{
		{compose.START, "classify_turn"},
		{"classify_turn", "dispatch_roles"},
		{"dispatch_roles", "synthesize_answer"},
		{"synthesize_answer", "record_decision"},
		{"record_decision", "finalize_turn"},
		{"finalize_turn", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("coordinator.process_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile coordinator graph: %w", err)
	}
	return runner, nil
}
