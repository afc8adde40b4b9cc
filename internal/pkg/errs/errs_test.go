package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("assignment", "42")

		assert.Equal(t, "assignment", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: assignment 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", 7, cause)

		assert.Equal(t, "object not found: order 7 (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("extracted with errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("load: %w", errs.NewObjectNotFoundError("courier", "c-1"))

		var nf *errs.ObjectNotFoundError
		require.ErrorAs(t, wrapped, &nf)
		assert.Equal(t, "courier", nf.ParamName)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("reason")
	assert.Equal(t, "value is invalid: reason", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	withCause := errs.NewValueIsInvalidErrorWithCause("courierID", errors.New("bad uuid"))
	assert.Equal(t, "value is invalid: courierID (cause: bad uuid)", withCause.Error())
	assert.Equal(t, errs.ErrValueIsInvalid, withCause.Unwrap())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("batchSize", 0, 1, 1000)

		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 1000, err.Max)
		assert.Equal(t, "value is out of range: batchSize is 0, min value is 1, max value is 1000", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("window", -1, 1, 60, errors.New("negative"))
		assert.Contains(t, err.Error(), "(cause: negative)")
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("orderID")
	assert.Equal(t, "value is required: orderID", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("orderID", errors.New("empty path"))
	assert.Equal(t, "value is required: orderID (cause: empty path)", withCause.Error())
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
}
