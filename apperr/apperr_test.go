package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "bad request", err: BadRequest("x"), want: KindBadRequest},
		{name: "wrapped conflict", err: fmt.Errorf("register: %w", Conflict("dup")), want: KindConflict},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "internal", err: Internal("failed", errors.New("driver text")), want: KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageHidesCause(t *testing.T) {
	err := Internal("Could not save", errors.New("pq: relation does not exist"))
	assert.Equal(t, "Could not save", Message(err))
	assert.Equal(t, "Internal server error", Message(errors.New("raw")))
	assert.ErrorContains(t, err, "relation does not exist")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindBadRequest))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindForbidden))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}
