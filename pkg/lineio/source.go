package lineio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLineBytes is the maximum accepted length of a single line.
// Longer lines are rejected rather than truncated to keep dispatch deterministic.
const MaxLineBytes = 4096

var (
	// ErrClosed is returned by ReadLine after the source has been closed.
	ErrClosed = errors.New("lineio: source is closed")
	// ErrLineTooLong is returned when a line exceeds MaxLineBytes.
	ErrLineTooLong = errors.New("lineio: line exceeds maximum length")
	// ErrInvalidUTF8 is returned when a line contains invalid UTF-8 sequences.
	ErrInvalidUTF8 = errors.New("lineio: line contains invalid UTF-8")
)

// Source acquires one logical line of input per call.
//
// ReadLine blocks until a full line is available or ctx is done, whichever
// comes first. The returned text has its trailing line terminator stripped;
// no other normalization is applied.
type Source interface {
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

// PromptSetter is implemented by sources that render the prompt themselves
// (e.g. ReadlineSource). The engine hands the prompt to the source instead of
// writing it to the output sink.
type PromptSetter interface {
	SetPrompt(prompt string)
}

// Mode selects whether typed input is echoed back by the terminal.
type Mode int

const (
	// ModeVisible echoes input as typed.
	ModeVisible Mode = iota
	// ModeHidden suppresses echo (passwords, tokens).
	ModeHidden
)

func (m Mode) String() string {
	switch m {
	case ModeVisible:
		return "visible"
	case ModeHidden:
		return "hidden"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "visible", "":
		return ModeVisible, nil
	case "hidden":
		return ModeHidden, nil
	default:
		return ModeVisible, fmt.Errorf("lineio: unknown input mode %q", s)
	}
}

type lineResult struct {
	text string
	err  error
}

// trimEOL strips a single trailing line terminator, LF or CRLF.
func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// checkLine normalizes and validates one raw line from a pump.
func checkLine(raw string) (string, error) {
	line := trimEOL(raw)
	if len(line) > MaxLineBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(line))
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return line, nil
}

// await races a pump channel against ctx and the source's done channel.
func await(ctx context.Context, lines <-chan lineResult, done <-chan struct{}) (string, error) {
	select {
	case <-done:
		return "", ErrClosed
	default:
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-done:
		return "", ErrClosed
	case res := <-lines:
		if res.err != nil {
			return "", res.err
		}
		return checkLine(res.text)
	}
}
