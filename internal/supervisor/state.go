package supervisor

import "fmt"

// State is the lifecycle state of the supervised server process.
type State string

const (
	StateNotStarted  State = "not_started" // no process yet
	StateLaunched    State = "launched"    // child started, bootstrap work may continue
	StateSeeding     State = "seeding"     // one-shot seeding task in progress
	StateSupervising State = "supervising" // blocked on the child
	StateExited      State = "exited"      // terminal; exit code recorded
)

// transitions lists the legal successor states.
var transitions = map[State][]State{
	StateNotStarted:  {StateLaunched},
	StateLaunched:    {StateSeeding, StateSupervising},
	StateSeeding:     {StateSupervising},
	StateSupervising: {StateExited},
	StateExited:      {},
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s *Supervisor) transition(next State) error {
	if !s.state.canTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.state, next)
	}

	s.logger.Debug().
		Str("from", string(s.state)).
		Str("to", string(next)).
		Msg("supervisor state change")
	s.state = next

	return nil
}
