package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Nil error stays nil", func(t *testing.T) {
		assert.NoError(t, NewError("noop", nil))
	})

	t.Run("Message contains trace and original", func(t *testing.T) {
		err := NewError("load model", errors.New("file missing"))
		require.Error(t, err)
		assert.Equal(t, "load model: file missing", err.Error())
	})

	t.Run("Wrapped errors stay reachable", func(t *testing.T) {
		sentinel := errors.New("sentinel")
		err := NewError("outer", NewError("inner", sentinel))
		assert.ErrorIs(t, err, sentinel)

		var traced *Error
		require.ErrorAs(t, err, &traced)
		assert.Equal(t, "outer", traced.Trace)
	})
}
