package turnnode

import (
	statex "github.com/wirelimit/visara/agent/state"
)

// RecordDecision stores the classification outcome in the
// coordinator's own role state. The decision itself is per-turn; only
// its result is kept, for observability.
func RecordDecision(in *TurnState, session *statex.SessionState) (*TurnState, error) {
	if in == nil {
		return nil, ErrNilTurnState
	}

	session.UpdateRoleState(statex.RoleCoordinator, statex.RolePatch{
		Active:       statex.BoolPtr(true),
		LastDecision: statex.DecisionPtr(in.Decision),
	})
	return in, nil
}
