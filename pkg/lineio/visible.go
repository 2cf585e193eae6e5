package lineio

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
)

// VisibleSource reads echoed lines from an io.Reader.
//
// A single pump goroutine owns the underlying reader and feeds completed
// lines into a one-slot channel. A line that completes after the caller's
// context expired parks in the slot; it is never delivered once the session
// that requested it has terminated.
type VisibleSource struct {
	reader *bufio.Reader
	lines  chan lineResult
	done   chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewVisible creates a source reading from r. A nil r defaults to os.Stdin.
func NewVisible(r io.Reader) *VisibleSource {
	if r == nil {
		r = os.Stdin
	}
	return &VisibleSource{
		reader: bufio.NewReader(r),
		lines:  make(chan lineResult, 1),
		done:   make(chan struct{}),
	}
}

func (s *VisibleSource) pump() {
	for {
		text, err := s.reader.ReadString('\n')

		// A partial line before EOF still counts as a command.
		if text != "" {
			select {
			case s.lines <- lineResult{text: text}:
			case <-s.done:
				return
			}
		}

		if err != nil {
			select {
			case s.lines <- lineResult{err: err}:
			case <-s.done:
			}
			return
		}
	}
}

// ReadLine returns the next full line, or ctx.Err() if ctx is done first.
func (s *VisibleSource) ReadLine(ctx context.Context) (string, error) {
	s.startOnce.Do(func() { go s.pump() })
	return await(ctx, s.lines, s.done)
}

// Close stops the pump. Pending or parked results are discarded.
func (s *VisibleSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
