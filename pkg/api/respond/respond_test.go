package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hagwon_strategy/pkg/core/store"
	"hagwon_strategy/pkg/models"
)

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{models.NewValidationError(nil, models.FieldError{Field: "month", Error: "must be 1-12"}), http.StatusBadRequest},
		{fmt.Errorf("%w: fee out of range", models.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("load: %w", store.ErrNotFound), http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), c.err)
		assert.Equal(t, c.code, rec.Code, c.err.Error())
	}

	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), cases[0].err)
	assert.JSONEq(t, `{"error":"invalid input","fields":{"month":"must be 1-12"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), cases[3].err)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestCORS(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.False(t, CORS(rec, httptest.NewRequest(http.MethodOptions, "/x", nil), http.MethodPost))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	assert.True(t, CORS(rec, httptest.NewRequest(http.MethodPost, "/x", nil), http.MethodPost))

	rec = httptest.NewRecorder()
	assert.False(t, CORS(rec, httptest.NewRequest(http.MethodPut, "/x", nil), http.MethodGet, http.MethodPost))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDecodeAndQueryInt(t *testing.T) {
	var v struct{ N int }
	err := Decode(httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"N":"x"}`)), &v)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	n, err := QueryInt(httptest.NewRequest(http.MethodGet, "/x?month=4", nil), "month", 1)
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = QueryInt(httptest.NewRequest(http.MethodGet, "/x", nil), "month", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = QueryInt(httptest.NewRequest(http.MethodGet, "/x?month=x", nil), "month", 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
