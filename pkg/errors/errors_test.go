package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("oracle", "GEMINI_API_KEY is not set", ErrAPIKeyRequired)
	assert.Equal(t, "configuration error in oracle: GEMINI_API_KEY is not set", err.Error())
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestParseErrorMessage(t *testing.T) {
	err := NewParseError("json", "Token2049", "unexpected token", nil)
	assert.Contains(t, err.Error(), "json parse error for Token2049")
}

func TestWrapIONilPassthrough(t *testing.T) {
	assert.NoError(t, WrapIO("read", "file.csv", nil))
	assert.NoError(t, WrapParse("csv", "file.csv", nil))
	assert.NoError(t, WrapAPI("gemini", nil))
}

func TestWrapIOPreservesCause(t *testing.T) {
	cause := New("disk full")
	err := WrapIO("write", "out.csv", cause)
	assert.ErrorIs(t, err, cause)

	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Operation)
}

func TestIsBusy(t *testing.T) {
	assert.True(t, IsBusy(ErrBusy))
	assert.False(t, IsBusy(ErrNoData))
	assert.False(t, IsBusy(nil))
}

func TestAPIErrorWithStatus(t *testing.T) {
	err := &APIError{Service: "sheets", StatusCode: 403, Message: "forbidden"}
	assert.Contains(t, err.Error(), "status 403")
}
