package wicket

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/wicket/pkg/lineio"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTimeout bounds each input read; a session with no completed line
// within d terminates with ResultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithInputMode selects echoed (ModeVisible) or unechoed (ModeHidden) input.
func WithInputMode(m lineio.Mode) Option {
	return func(e *Engine) {
		e.mode = m
	}
}

// WithStaticPrompt sets the prompt used for handlers that do not implement
// Prompter.
func WithStaticPrompt(prompt string) Option {
	return func(e *Engine) {
		e.staticPrompt = prompt
	}
}

// WithLogger sets the structured logger for session lifecycle and read
// faults. The engine never logs typed input.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithInput sets the reader the engine acquires lines from.
func WithInput(r io.Reader) Option {
	return func(e *Engine) {
		e.in = r
	}
}

// WithOutput sets the sink prompts are rendered to.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithSource injects a custom acquisition strategy (e.g. a ReadlineSource),
// bypassing the input-mode selection. The caller keeps ownership and must
// close it.
func WithSource(src lineio.Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// optionMap is the loosely-typed configuration shape accepted from config
// files and embedding hosts.
type optionMap struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	InputMode    lineio.Mode   `mapstructure:"inputMode"`
	StaticPrompt string        `mapstructure:"staticPrompt"`
}

// OptionsFromMap decodes the recognized configuration keys (timeout,
// inputMode, staticPrompt) into engine options. Durations accept Go syntax
// ("10s"); input modes accept "visible" and "hidden". Unknown keys are
// rejected.
func OptionsFromMap(m map[string]any) ([]Option, error) {
	cfg := optionMap{
		Timeout:   DefaultTimeout,
		InputMode: lineio.ModeVisible,
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToModeHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("wicket: building option decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("wicket: invalid options: %w", err)
	}

	return []Option{
		WithTimeout(cfg.Timeout),
		WithInputMode(cfg.InputMode),
		WithStaticPrompt(cfg.StaticPrompt),
	}, nil
}

// stringToModeHook lets mapstructure decode "visible"/"hidden" into a Mode.
func stringToModeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(lineio.Mode(0)) {
		return data, nil
	}
	return lineio.ParseMode(data.(string))
}
