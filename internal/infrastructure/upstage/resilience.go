package upstage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "upstage status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("upstage %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("upstage %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}

// classifyAPIError decides retry behavior per attempt. 5xx and
// throttling statuses are transient; 4xx means the request itself is
// bad and retrying wastes quota.
func classifyAPIError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	// Caller cancellation is final. A per-attempt client timeout also
	// matches context.DeadlineExceeded, so deadline errors fall through
	// to the net.Error branch and stay retryable.
	if errors.Is(err, context.Canceled) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if domain.IsKind(err, domain.ErrFileNotFound) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.ErrorClassification{
				Retryable:     true,
				RecordFailure: true,
			}
		}
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}

// wrapAPIError maps the executor outcome onto the domain taxonomy.
// Exhaustion keeps the last transient cause wrapped underneath.
func wrapAPIError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, resilience.ErrExhausted) {
		return domain.WrapError(domain.ErrExhausted, operation, err)
	}
	if domain.IsKind(err, domain.ErrFileNotFound) {
		return err
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return domain.WrapError(domain.ErrAuth, operation, err)
		case isRetryableHTTPStatus(statusErr.StatusCode):
			return domain.WrapError(domain.ErrServer, operation, err)
		case statusErr.StatusCode >= 400 && statusErr.StatusCode < 500:
			return domain.WrapError(domain.ErrClient, operation, err)
		default:
			return domain.WrapError(domain.ErrServer, operation, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.WrapError(domain.ErrNetwork, operation, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(domain.ErrNetwork, operation, err)
	}
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrServer, operation, err)
	}
	return err
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
