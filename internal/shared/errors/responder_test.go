package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errSoldOut = errors.New("sold out")

func newTestContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, rec
}

func TestRespondError_UsesMapper(t *testing.T) {
	responder := NewResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errSoldOut) {
			return ErrConflict.WithDetail("sold out"), true
		}
		return ProblemDetail{}, false
	})
	c, rec := newTestContext("/v1/cart")

	responder.RespondError(c, errSoldOut)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, TypeConflict, body.Type)
	require.Equal(t, "/v1/cart", body.Instance)
}

func TestRespondError_HidesUnknownErrors(t *testing.T) {
	responder := NewResponder("https://storefront.example")
	c, rec := newTestContext("/v1/checkout/submit")

	responder.RespondError(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "https://storefront.example"+TypeInternal, body.Type)
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	redirect := NewRedirectProblem(ErrEmptyCart, "cart is empty", "/cart")
	require.Equal(t, "/cart", redirect.Extensions["redirect"])
	require.Nil(t, ErrEmptyCart.Extensions)
	require.Equal(t, http.StatusConflict, HTTPStatusFromError(redirect))
}
