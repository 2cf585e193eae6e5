package lineio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// HiddenSource reads lines without echoing them back.
//
// When the reader is a real terminal, echo is suppressed via the terminal's
// own no-echo mode and only the final newline is written to the output sink
// so the cursor advances. For non-terminal readers (pipes, test buffers)
// there is nothing to suppress and the source degrades to a plain read;
// typed bytes still never reach the output sink.
type HiddenSource struct {
	out    io.Writer
	fd     int
	isTerm bool
	reader *bufio.Reader

	lines chan lineResult
	done  chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewHidden creates a hidden source reading from r and echoing line
// terminators to w. Nil arguments default to os.Stdin and os.Stdout.
func NewHidden(r io.Reader, w io.Writer) *HiddenSource {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	s := &HiddenSource{
		out:   w,
		lines: make(chan lineResult, 1),
		done:  make(chan struct{}),
	}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.fd = int(f.Fd())
		s.isTerm = true
	} else {
		s.reader = bufio.NewReader(r)
	}
	return s
}

func (s *HiddenSource) pump() {
	for {
		text, err := s.read()
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

func (s *HiddenSource) read() (string, error) {
	if s.isTerm {
		b, err := term.ReadPassword(s.fd)
		if err != nil {
			return "", err
		}
		// ReadPassword swallows the newline; advance the cursor ourselves.
		fmt.Fprintln(s.out)
		// Re-attach the terminator so the pump treats terminal and pipe
		// input uniformly; checkLine strips it again.
		return string(b) + "\n", nil
	}
	return s.reader.ReadString('\n')
}

// ReadLine returns the next full line, or ctx.Err() if ctx is done first.
func (s *HiddenSource) ReadLine(ctx context.Context) (string, error) {
	s.startOnce.Do(func() { go s.pump() })
	return await(ctx, s.lines, s.done)
}

// Close stops the pump. Pending or parked results are discarded.
func (s *HiddenSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
