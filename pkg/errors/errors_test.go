package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrPathNotFound, "path not found")
	assert.Equal(t, ErrPathNotFound, err.Code)
	assert.Equal(t, "path not found", err.Message)
	assert.Equal(t, "[PATH_NOT_FOUND] path not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrToolUnavailable, "'%s' command not found", "jq")
	assert.Equal(t, "[TOOL_UNAVAILABLE] 'jq' command not found", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(inner, ErrFileAccess, "cannot read file")

	assert.Equal(t, ErrFileAccess, err.Code)
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "ignored %d", 1))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrSizeExceeded, "file too large").
		WithDetail("path", "/tmp/big.json").
		WithDetail("size", int64(1 << 24))

	assert.Equal(t, "/tmp/big.json", err.Details["path"])
	assert.Equal(t, int64(1<<24), err.Details["size"])
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(fmt.Errorf("inner"), ErrToolFailed, "jq failed")
	assert.True(t, errors.Is(err, New(ErrToolFailed, "any message")))
	assert.False(t, errors.Is(err, New(ErrToolTimeout, "any message")))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrNoHandler, "nothing matched")
	wrapped := fmt.Errorf("dispatch: %w", err)

	assert.True(t, IsErrorCode(err, ErrNoHandler))
	assert.True(t, IsErrorCode(wrapped, ErrNoHandler), "code survives stdlib wrapping")
	assert.False(t, IsErrorCode(err, ErrPathNotFound))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrNoHandler))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrConfigParse, GetErrorCode(New(ErrConfigParse, "bad toml")))
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrUnknown, GetErrorCode(nil))
}

func TestIsRecoverable(t *testing.T) {
	recoverable := []ErrorCode{
		ErrToolUnavailable, ErrToolFailed, ErrToolTimeout,
		ErrContentInvalid, ErrSizeExceeded, ErrConfigParse, ErrConfigValid,
	}
	for _, code := range recoverable {
		assert.True(t, IsRecoverable(New(code, "x")), "code %s", code)
	}

	fatal := []ErrorCode{ErrPathNotFound, ErrFileAccess, ErrNoHandler, ErrInternal, ErrInvalidInput}
	for _, code := range fatal {
		assert.False(t, IsRecoverable(New(code, "x")), "code %s", code)
	}

	assert.False(t, IsRecoverable(fmt.Errorf("plain")))
	assert.False(t, IsRecoverable(nil))
}
