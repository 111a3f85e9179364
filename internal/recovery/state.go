package recovery

import "fmt"

// State identifies one step of the recovery sequence. The sequence is
// strictly linear and not resumable: a failure in any state is terminal
// for the invocation, because partial replacement of the data directory is
// not atomic and resuming requires operator judgment.
type State int

const (
	StateSelectSnapshot State = iota
	StateValidate
	StateStopServer
	StateWipeAndRestore
	StateConfigureRecovery
	StateStartServer
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelectSnapshot:
		return "SELECT_SNAPSHOT"
	case StateValidate:
		return "VALIDATE"
	case StateStopServer:
		return "STOP_SERVER"
	case StateWipeAndRestore:
		return "WIPE_AND_RESTORE"
	case StateConfigureRecovery:
		return "CONFIGURE_RECOVERY"
	case StateStartServer:
		return "START_SERVER"
	case StateDone:
		return "DONE"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Error is the terminal failure of a recovery run, carrying the state the
// sequence stopped in plus the underlying cause.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("recovery failed at %s: %v", e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(s State, err error) *Error {
	return &Error{State: s, Err: err}
}
