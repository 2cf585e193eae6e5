package wicket_test

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wicket"
)

// scriptSource serves pre-baked lines, then either fails with err or blocks
// until the context deadline, depending on configuration.
type scriptSource struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (s *scriptSource) ReadLine(ctx context.Context) (string, error) {
	s.mu.Lock()
	if len(s.lines) > 0 {
		line := s.lines[0]
		s.lines = s.lines[1:]
		s.mu.Unlock()
		return line, nil
	}
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *scriptSource) Close() error { return nil }

// counterHandler threads an int counter through the session and exposes it
// in the prompt.
type counterHandler struct{}

func (counterHandler) Init(args []string) wicket.InitResult { return wicket.InitOk(0) }

func (counterHandler) PromptText(state any) []string {
	return []string{strconv.Itoa(state.(int)), "> "}
}

func (counterHandler) HandleCommand(command string, state any) wicket.Verdict {
	if command == "exit" {
		return wicket.Exit("bye", state)
	}
	return wicket.Continue(state.(int) + 1)
}

func TestRun_ExitScenario(t *testing.T) {
	// The canonical consumer: handleCommand("exit", s) -> Exit("bye", s),
	// visible mode, typed "exit\n". Exercises the real visible source.
	out := &bytes.Buffer{}
	eng := wicket.New(
		wicket.WithInput(strings.NewReader("exit\n")),
		wicket.WithOutput(out),
		wicket.WithStaticPrompt("> "),
	)

	result, err := eng.Run(t.Context(), exitHandler{})
	require.NoError(t, err)
	assert.Equal(t, "bye", result)
	// No further prompt after the terminating verdict.
	assert.Equal(t, "> ", out.String())
}

type exitHandler struct{}

func (exitHandler) Init(args []string) wicket.InitResult { return wicket.InitOk(nil) }

func (exitHandler) HandleCommand(command string, state any) wicket.Verdict {
	if command == "exit" {
		return wicket.Exit("bye", state)
	}
	return wicket.Continue(state)
}

func TestRun_StateThreading(t *testing.T) {
	// After 3 commands the 4th prompt must observe counter value 3: the
	// state given to iteration n+1 is exactly what iteration n returned.
	out := &bytes.Buffer{}
	src := &scriptSource{lines: []string{"a", "b", "c", "exit"}}
	eng := wicket.New(wicket.WithSource(src), wicket.WithOutput(out))

	result, err := eng.Run(t.Context(), counterHandler{})
	require.NoError(t, err)
	assert.Equal(t, "bye", result)
	assert.Equal(t, "0> 1> 2> 3> ", out.String())
}

func TestRun_FirstPromptReflectsInit(t *testing.T) {
	out := &bytes.Buffer{}
	src := &scriptSource{lines: []string{"exit"}}
	eng := wicket.New(wicket.WithSource(src), wicket.WithOutput(out))

	_, err := eng.Run(t.Context(), counterHandler{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "0> "))
}

func TestRun_Timeout(t *testing.T) {
	var dispatched atomic.Int64
	h := funcHandler{
		init: func([]string) wicket.InitResult { return wicket.InitOk(nil) },
		handle: func(string, any) wicket.Verdict {
			dispatched.Add(1)
			return wicket.Continue(nil)
		},
	}

	eng := wicket.New(
		wicket.WithSource(&scriptSource{}), // never produces a line
		wicket.WithTimeout(40*time.Millisecond),
		wicket.WithOutput(&bytes.Buffer{}),
	)

	start := time.Now()
	result, err := eng.Run(t.Context(), h)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, wicket.ResultTimeout, result)
	assert.Zero(t, dispatched.Load(), "no dispatch may follow a timeout")
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestRun_TimeoutAppliesPerRead(t *testing.T) {
	// One command arrives, then silence: the session still times out.
	src := &scriptSource{lines: []string{"hello"}}
	eng := wicket.New(
		wicket.WithSource(src),
		wicket.WithTimeout(40*time.Millisecond),
		wicket.WithOutput(&bytes.Buffer{}),
	)

	result, err := eng.Run(t.Context(), counterHandler{})
	require.NoError(t, err)
	assert.Equal(t, wicket.ResultTimeout, result)
}

func TestRun_InputFaultNormalized(t *testing.T) {
	var dispatched atomic.Int64
	h := funcHandler{
		init: func([]string) wicket.InitResult { return wicket.InitOk(nil) },
		handle: func(string, any) wicket.Verdict {
			dispatched.Add(1)
			return wicket.Continue(nil)
		},
	}

	src := &scriptSource{err: errors.New("device gone")}
	eng := wicket.New(wicket.WithSource(src), wicket.WithOutput(&bytes.Buffer{}))

	result, err := eng.Run(t.Context(), h)
	require.NoError(t, err, "read faults must not propagate")
	assert.Equal(t, wicket.ResultCommandError, result)
	assert.Zero(t, dispatched.Load())
}

func TestRun_InitErrorPropagates(t *testing.T) {
	boom := errors.New("no such account")
	h := funcHandler{
		init: func([]string) wicket.InitResult { return wicket.InitError(boom) },
	}

	out := &bytes.Buffer{}
	eng := wicket.New(wicket.WithSource(&scriptSource{}), wicket.WithOutput(out))

	result, err := eng.Run(t.Context(), h)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result)
	assert.Empty(t, out.String(), "loop must not start after an init error")
}

func TestRun_InitContinueResolves(t *testing.T) {
	h := funcHandler{
		init: func(args []string) wicket.InitResult {
			return wicket.InitContinue("inter", func(s any) any {
				return s.(string) + "+resolved"
			})
		},
		handle: func(command string, state any) wicket.Verdict {
			return wicket.Exit(state, state)
		},
	}

	src := &scriptSource{lines: []string{"go"}}
	eng := wicket.New(wicket.WithSource(src), wicket.WithOutput(&bytes.Buffer{}))

	result, err := eng.Run(t.Context(), h)
	require.NoError(t, err)
	assert.Equal(t, "inter+resolved", result)
}

func TestRun_InvalidInitPanics(t *testing.T) {
	h := funcHandler{
		init: func([]string) wicket.InitResult { return wicket.InitResult{} },
	}
	eng := wicket.New(wicket.WithSource(&scriptSource{}))

	assert.Panics(t, func() {
		_, _ = eng.Run(t.Context(), h)
	})
}

func TestRun_HiddenModeDoesNotEcho(t *testing.T) {
	out := &bytes.Buffer{}
	eng := wicket.New(
		wicket.WithInputMode(wicket.ModeHidden),
		wicket.WithInput(strings.NewReader("s3cret\n")),
		wicket.WithOutput(out),
		wicket.WithStaticPrompt("password: "),
	)

	h := funcHandler{
		init: func([]string) wicket.InitResult { return wicket.InitOk(nil) },
		handle: func(command string, state any) wicket.Verdict {
			return wicket.Exit(command, state)
		},
	}

	result, err := eng.Run(t.Context(), h)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", result, "the handler still receives the line")
	assert.NotContains(t, out.String(), "s3cret", "the sink must never see the secret")
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	eng := wicket.New(
		wicket.WithSource(&scriptSource{}),
		wicket.WithTimeout(time.Minute),
		wicket.WithOutput(&bytes.Buffer{}),
	)

	done := make(chan struct{})
	var result any
	var err error
	go func() {
		result, err = eng.Run(ctx, exitHandler{})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

// funcHandler adapts plain functions to the Handler interface for tests.
type funcHandler struct {
	init   func(args []string) wicket.InitResult
	handle func(command string, state any) wicket.Verdict
}

func (f funcHandler) Init(args []string) wicket.InitResult { return f.init(args) }

func (f funcHandler) HandleCommand(command string, state any) wicket.Verdict {
	return f.handle(command, state)
}

// MockHandler verifies call shapes with testify mocks.
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Init(args []string) wicket.InitResult {
	res := m.Called(args)
	return res.Get(0).(wicket.InitResult)
}

func (m *MockHandler) HandleCommand(command string, state any) wicket.Verdict {
	res := m.Called(command, state)
	return res.Get(0).(wicket.Verdict)
}

func TestRun_DispatchReceivesTrimmedLine(t *testing.T) {
	h := new(MockHandler)
	h.On("Init", []string{"arg1"}).Return(wicket.InitOk("st")).Once()
	// The CRLF terminator is stripped, nothing else is normalized.
	h.On("HandleCommand", "  Ping ", "st").Return(wicket.Exit("pong", "st")).Once()

	eng := wicket.New(
		wicket.WithInput(strings.NewReader("  Ping \r\n")),
		wicket.WithOutput(&bytes.Buffer{}),
	)

	result, err := eng.Run(t.Context(), h, "arg1")
	require.NoError(t, err)
	assert.Equal(t, "pong", result)
	h.AssertExpectations(t)
}
