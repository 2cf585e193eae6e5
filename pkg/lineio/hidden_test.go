package lineio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiddenSource_NeverWritesInputToSink(t *testing.T) {
	out := &bytes.Buffer{}
	src := NewHidden(strings.NewReader("hunter2\n"), out)
	defer src.Close()

	line, err := src.ReadLine(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "hunter2", line)
	assert.NotContains(t, out.String(), "hunter2")
}

func TestHiddenSource_EOF(t *testing.T) {
	src := NewHidden(strings.NewReader(""), io.Discard)
	defer src.Close()

	_, err := src.ReadLine(t.Context())
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"visible", ModeVisible, false},
		{"hidden", ModeHidden, false},
		{"HIDDEN", ModeHidden, false},
		{"", ModeVisible, false},
		{"loud", ModeVisible, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "visible", ModeVisible.String())
	assert.Equal(t, "hidden", ModeHidden.String())
}
