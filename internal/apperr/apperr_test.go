package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs_MatchesKind(t *testing.T) {
	err := fmt.Errorf("loading owner: %w", NotFound("Owner"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestAs_WrapsForeignErrors(t *testing.T) {
	e := As(errors.New("pq: connection refused"))

	assert.Equal(t, KindStorage, e.Kind)
	assert.NotContains(t, e.Message, "pq")
}

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindBadRequest, http.StatusBadRequest},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestField(t *testing.T) {
	e := Field("type", "must be one of: a, b")

	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, map[string]string{"type": "must be one of: a, b"}, e.Fields)
}
