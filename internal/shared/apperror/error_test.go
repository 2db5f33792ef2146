package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPMapsAppErrors(t *testing.T) {
	appErr := New(CodeConflict, "already exists", http.StatusConflict)

	httpErr := ToHTTP(appErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, CodeConflict, httpErr.Code)
	assert.Equal(t, "already exists", httpErr.Message)
}

func TestToHTTPUnwrapsWrappedAppErrors(t *testing.T) {
	appErr := New(CodeNotFound, "missing", http.StatusNotFound)
	wrapped := fmt.Errorf("loading leave: %w", appErr)

	httpErr := ToHTTP(wrapped)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, CodeNotFound, httpErr.Code)
}

func TestToHTTPHidesUnknownErrors(t *testing.T) {
	httpErr := ToHTTP(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, CodeInternalError, httpErr.Code)
	assert.NotContains(t, httpErr.Message, "pq:")
}
