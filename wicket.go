package wicket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/wicket/pkg/lineio"
)

// DefaultTimeout bounds a single input read when no option overrides it.
const DefaultTimeout = 30 * time.Second

// Sentinel is a fixed out-of-band result returned by Run in lieu of a
// handler-supplied one.
type Sentinel string

const (
	// ResultTimeout is returned when no line completes within the session timeout.
	ResultTimeout Sentinel = "timeout"
	// ResultCommandError is returned when input acquisition fails.
	// The raw read error is logged, never propagated.
	ResultCommandError Sentinel = "Command Error"
)

// Convenience re-exports so consumers configuring the engine don't need to
// import lineio directly.
const (
	ModeVisible = lineio.ModeVisible
	ModeHidden  = lineio.ModeHidden
)

// Engine owns the read-eval loop: render a prompt, read one line under the
// session timeout, hand it to the consumer's Handler, apply the Verdict,
// repeat. Each Run call is an independent session; the Engine itself holds
// only configuration and may be reused.
type Engine struct {
	timeout      time.Duration
	mode         lineio.Mode
	staticPrompt string
	logger       *slog.Logger
	in           io.Reader
	out          io.Writer
	source       lineio.Source
}

// New creates an Engine with the given options. Defaults: 30s timeout,
// visible input from os.Stdin, prompts written to os.Stdout, discard logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		timeout: DefaultTimeout,
		mode:    lineio.ModeVisible,
		logger:  slog.New(slog.DiscardHandler),
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one session: Init, then the prompt loop, until a Verdict
// exits, the timeout fires, or input acquisition fails.
//
// The return value is exactly one of three shapes: the result carried by the
// terminating Exit verdict, ResultTimeout, or ResultCommandError. The error
// is non-nil only when Init reports one (returned verbatim) or when the
// caller's own ctx is cancelled.
func (e *Engine) Run(ctx context.Context, h Handler, args ...string) (any, error) {
	// Starting: resolve the initial command state.
	state, err := h.Init(args).resolve()
	if err != nil {
		return nil, err
	}

	src := e.source
	if src == nil {
		src = e.newSource()
		defer src.Close()
	}

	e.logger.Debug("session started", "mode", e.mode, "timeout", e.timeout)

	for {
		// Prompting: render exactly what the handler computed.
		e.render(src, e.promptFor(h, state))

		// AwaitingInput: race one read against the session timeout.
		readCtx, cancel := context.WithTimeout(ctx, e.timeout)
		line, err := src.ReadLine(readCtx)
		cancel()
		if err != nil {
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				e.logger.Debug("session timed out", "timeout", e.timeout)
				return ResultTimeout, nil
			case ctx.Err() != nil:
				return nil, ctx.Err()
			default:
				e.logger.Warn("input acquisition failed", "err", err)
				return ResultCommandError, nil
			}
		}

		// Dispatching: the handler owns the state for this iteration.
		v := h.HandleCommand(line, state)
		if v.exit {
			e.logger.Debug("session ended by handler")
			return v.result, nil
		}
		state = v.next
	}
}

// newSource builds the acquisition strategy for the configured input mode.
func (e *Engine) newSource() lineio.Source {
	if e.mode == lineio.ModeHidden {
		return lineio.NewHidden(e.in, e.out)
	}
	return lineio.NewVisible(e.in)
}

// promptFor computes the prompt for the current state. Handlers implementing
// Prompter win over the configured static prompt.
func (e *Engine) promptFor(h Handler, state any) string {
	if p, ok := h.(Prompter); ok {
		return strings.Join(p.PromptText(state), "")
	}
	return e.staticPrompt
}

// render hands the prompt to the source when it owns the terminal
// (ReadlineSource), otherwise writes it to the output sink.
func (e *Engine) render(src lineio.Source, prompt string) {
	if ps, ok := src.(lineio.PromptSetter); ok {
		ps.SetPrompt(prompt)
		return
	}
	if prompt != "" {
		fmt.Fprint(e.out, prompt)
	}
}
