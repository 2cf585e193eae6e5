package lineio

import (
	"context"
	"io"
	"sync"

	"github.com/chzyer/readline"
)

// ReadlineConfig configures a ReadlineSource.
type ReadlineConfig struct {
	// Prompt is the initial prompt; the engine updates it via SetPrompt.
	Prompt string
	// HistoryFile enables persistent history when non-empty.
	HistoryFile string
	// Words are offered as tab completions.
	Words []string
}

// ReadlineSource is a visible source with tab completion and history.
//
// It owns the terminal through a readline instance, so it also renders the
// prompt itself (via PromptSetter). This is consumer-facing glue for hosts
// that want completion; the engine core never requires it.
type ReadlineSource struct {
	rl *readline.Instance

	lines chan lineResult
	done  chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewReadline creates a completion-capable source on the process terminal.
func NewReadline(cfg ReadlineConfig) (*ReadlineSource, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(cfg.Words))
	for _, w := range cfg.Words {
		items = append(items, readline.PcItem(w))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	return &ReadlineSource{
		rl:    rl,
		lines: make(chan lineResult, 1),
		done:  make(chan struct{}),
	}, nil
}

// SetPrompt updates the prompt rendered by the readline instance.
func (s *ReadlineSource) SetPrompt(prompt string) {
	s.rl.SetPrompt(prompt)
}

func (s *ReadlineSource) pump() {
	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				err = io.EOF
			}
			select {
			case s.lines <- lineResult{err: err}:
			case <-s.done:
			}
			return
		}
		select {
		// Readline already strips the terminator.
		case s.lines <- lineResult{text: line}:
		case <-s.done:
			return
		}
	}
}

// ReadLine returns the next full line, or ctx.Err() if ctx is done first.
func (s *ReadlineSource) ReadLine(ctx context.Context) (string, error) {
	s.startOnce.Do(func() { go s.pump() })
	return await(ctx, s.lines, s.done)
}

// Close stops the pump and releases the terminal.
func (s *ReadlineSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.rl.Close()
	})
	return err
}
