package wicket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitResult_Resolve(t *testing.T) {
	t.Run("ok carries the state", func(t *testing.T) {
		state, err := InitOk(42).resolve()
		require.NoError(t, err)
		assert.Equal(t, 42, state)
	})

	t.Run("error is returned verbatim", func(t *testing.T) {
		boom := errors.New("boom")
		state, err := InitError(boom).resolve()
		assert.Same(t, boom, err)
		assert.Nil(t, state)
	})

	t.Run("continue runs the continuation once", func(t *testing.T) {
		calls := 0
		res := InitContinue(10, func(s any) any {
			calls++
			return s.(int) * 2
		})
		state, err := res.resolve()
		require.NoError(t, err)
		assert.Equal(t, 20, state)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero value is a contract violation", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = InitResult{}.resolve()
		})
	})

	t.Run("continue without continuation is a contract violation", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = InitResult{kind: initCont, state: 1}.resolve()
		})
	})
}

func TestVerdict_Shapes(t *testing.T) {
	v := Continue("next")
	assert.False(t, v.exit)
	assert.Equal(t, "next", v.next)

	// Exit discards the state argument entirely.
	v = Exit("result", "discarded")
	assert.True(t, v.exit)
	assert.Equal(t, "result", v.result)
	assert.Nil(t, v.next)
}
