package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesUnwrapChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(error(err), &appErr))
	assert.Equal(t, CodeInternalError, appErr.Code)
}

func TestMarshalJSONHidesInternals(t *testing.T) {
	err := Wrap(errors.New("pq: secret dsn"), CodeNotFound, "request", "Training request not found", http.StatusNotFound).
		WithDetails(map[string]string{"id": "req-1"})

	raw, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)

	assert.NotContains(t, string(raw), "secret dsn")
	assert.NotContains(t, string(raw), "404")
	assert.Contains(t, string(raw), "req-1")
}

func TestHandleErrorWritesAppErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, ErrPartnerNotApproved)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeForbidden, body.Error.Code)
	assert.Equal(t, "partner", body.Error.Domain)
}

func TestHandleErrorWrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, errors.New("pq: deadlock detected"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "deadlock", "release mode hides internals")
}
