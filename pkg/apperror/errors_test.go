package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"typed not found", NotFound("film", 7), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load review: %w", NotFound("review", 3)), http.StatusNotFound},
		{"conflict", Conflict("email %q in use", "a@b.c"), http.StatusConflict},
		{"invalid", Invalid("unknown sort key %q", "bogus"), http.StatusBadRequest},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"internal", Internal(errors.New("disk I/O error")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapErrorToStatus(tt.err); got != tt.want {
				t.Errorf("MapErrorToStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNotFoundErrorCarriesKindAndID(t *testing.T) {
	err := fmt.Errorf("find: %w", NotFound("user", 42))

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError in chain, got %v", err)
	}
	if nf.Kind != "user" || nf.ID != 42 {
		t.Errorf("got kind=%q id=%d", nf.Kind, nf.ID)
	}
	if nf.Error() != "user with id 42 not found" {
		t.Errorf("unexpected message %q", nf.Error())
	}
}

func TestInternalKeepsCauseAndKnownKinds(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("load film: %w", Internal(cause))
	if !errors.Is(err, ErrInternal) || !errors.Is(err, cause) {
		t.Errorf("Internal(%v) should match ErrInternal and the cause, got %v", cause, err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"not found", NotFound("user", 1)},
		{"invalid", Invalid("bad count")},
		{"already internal", Internal(cause)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Internal(tt.err); got != tt.err {
				t.Errorf("Internal(%v) = %v, want it unchanged", tt.err, got)
			}
		})
	}
}
