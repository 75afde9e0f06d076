package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NotFound("outlet abc not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "outlet abc not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Resource not found", ErrNotFound.Message, "sentinel must not be mutated")
}

func TestWrapKeepsCauseAndKind(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("list outlets: %w", ErrTransport.Wrap(cause))

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, ErrTransport.Err, "sentinel must not be mutated")

	apiErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "TRANSPORT", apiErr.Code)
}

func TestAsNonAPIError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}

func TestToJSON(t *testing.T) {
	err := ValidationError("invalid outlet", FieldError{Field: "name", Message: "name is required"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(err.ToJSON(), &body))

	assert.Equal(t, false, body["success"])
	inner := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", inner["code"])
	details := inner["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].(map[string]any)["field"])
}
