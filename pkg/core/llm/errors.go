package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
)

// Every provider error wraps exactly one of these.
var (
	ErrTimeout = errors.New("text service timeout")
	ErrAuth    = errors.New("text service auth error")
	ErrService = errors.New("text service error")
)

// Classify wraps err with its kind. status is the HTTP status when the
// caller has one, 0 otherwise.
func Classify(provider string, status int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrAuth) || errors.Is(err, ErrService) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", provider, kindOf(status, err), err)
}

func kindOf(status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrTimeout
	}
	if status >= 400 {
		return ErrService
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return ErrTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "api key", "api_key", "unauthenticated", "permission denied", "invalid x-api-key", "status 401", "status 403", "code 401", "code 403", "error 401", "error 403"):
		return ErrAuth
	case containsAny(msg, "deadline exceeded", "timeout", "timed out"):
		return ErrTimeout
	}
	return ErrService
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// missingKey is returned before any network call when no key is set.
func missingKey(provider, env string) error {
	return fmt.Errorf("%s: %w: %s is not set", provider, ErrAuth, env)
}

// KindName is a short label for logs and API responses.
func KindName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	default:
		return "service"
	}
}
