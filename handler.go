package wicket

// Handler is the contract a consumer supplies to the engine.
//
// Init produces the starting command state for a session; HandleCommand
// receives each trimmed input line together with the current state and
// decides how the session proceeds. Handlers that also implement Prompter
// control the prompt; all others get the engine's static prompt.
type Handler interface {
	// Init produces the initial command state from the session arguments.
	// The result must be built with InitOk, InitError or InitContinue;
	// anything else is a programming defect and panics the engine.
	Init(args []string) InitResult

	// HandleCommand processes one command against the current state and
	// returns a Verdict. The command has its line terminator stripped and
	// is otherwise untouched.
	HandleCommand(command string, state any) Verdict
}

// Prompter is the optional prompt capability of a Handler.
//
// PromptText computes the prompt from the current state as an ordered
// sequence of strings; the engine concatenates them before rendering. It
// must be side-effect free with respect to the engine.
type Prompter interface {
	PromptText(state any) []string
}

// Verdict is the handler's decision after processing one command.
type Verdict struct {
	exit   bool
	next   any
	result any
}

// Continue loops again with next as the new command state.
func Continue(next any) Verdict {
	return Verdict{next: next}
}

// Exit terminates the session; Run returns result to its caller. The state
// argument is accepted for symmetry with Continue and discarded.
func Exit(result any, _ any) Verdict {
	return Verdict{exit: true, result: result}
}

type initKind int

const (
	initInvalid initKind = iota
	initOk
	initErr
	initCont
)

// InitResult is the outcome of Handler.Init. The zero value is invalid;
// use one of the constructors below.
type InitResult struct {
	kind  initKind
	state any
	err   error
	cont  func(state any) any
}

// InitOk starts the session with the given state.
func InitOk(state any) InitResult {
	return InitResult{kind: initOk, state: state}
}

// InitError aborts the session; Run returns err verbatim.
func InitError(err error) InitResult {
	return InitResult{kind: initErr, err: err}
}

// InitContinue starts the session with cont(intermediate): the engine
// invokes cont once, before the first prompt, to resolve the final initial
// state.
func InitContinue(intermediate any, cont func(state any) any) InitResult {
	return InitResult{kind: initCont, state: intermediate, cont: cont}
}

// resolve unpacks an InitResult into the state the loop starts with.
// An invalid result shape is a contract violation, not a recoverable error.
func (r InitResult) resolve() (any, error) {
	switch r.kind {
	case initOk:
		return r.state, nil
	case initErr:
		return nil, r.err
	case initCont:
		if r.cont == nil {
			panic("wicket: InitContinue requires a continuation function")
		}
		return r.cont(r.state), nil
	default:
		panic("wicket: Handler.Init returned an invalid InitResult; use InitOk, InitError or InitContinue")
	}
}
