package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.Set("request_id", "req-1")
		h(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestErrorCarriesKind(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, apperror.NewNetworkError("Backend unreachable", errors.New("dial tcp: refused")))
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"network"`)
	assert.Contains(t, w.Body.String(), `"request_id":"req-1"`)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, errors.New("pq: relation does not exist"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"internal"`)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestValidationErrorListsFields(t *testing.T) {
	w := serve(func(c *gin.Context) {
		ValidationError(c, []apperror.FieldError{{Field: "customer_id", Message: "required"}})
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"customer_id"`)
}

func TestWarningKeepsSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Warning(c, "Receipt generated but printing failed", gin.H{"receipt": "r"}, apperror.NewDeviceError("Printer connection lost", nil))
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"warning":"Printer connection lost"`)
}
