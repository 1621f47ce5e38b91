package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", fmt.Errorf("create room: %w", ErrInvalidInput), http.StatusBadRequest},
		{"already exists", fmt.Errorf("create room %q: %w", "r", ErrAlreadyExists), http.StatusConflict},
		{"not found", fmt.Errorf("delete room: %w", ErrNotFound), http.StatusNotFound},
		{"storage fault", fmt.Errorf("list rooms: %w: %w", ErrStorageFault, errors.New("conn reset")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
