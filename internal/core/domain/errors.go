package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuth              = errors.New("authentication failed")
	ErrClient            = errors.New("rejected by remote api")
	ErrServer            = errors.New("remote api failure")
	ErrNetwork           = errors.New("network failure")
	ErrExhausted         = errors.New("retry attempts exhausted")
	ErrParse             = errors.New("malformed api response")
	ErrSchema            = errors.New("malformed extraction schema")
	ErrMissingSchema     = errors.New("no extraction schema available")
	ErrStorage           = errors.New("artifact storage failure")
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// Kind maps an error onto the taxonomy name tool callers branch on.
// Exhaustion wraps the last transient cause, so it is checked before
// the network and server kinds.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuth):
		return "AuthError"
	case errors.Is(err, ErrExhausted):
		return "ExhaustedRetriesError"
	case errors.Is(err, ErrClient):
		return "ClientError"
	case errors.Is(err, ErrServer):
		return "ServerError"
	case errors.Is(err, ErrNetwork):
		return "NetworkError"
	case errors.Is(err, ErrParse):
		return "ParseError"
	case errors.Is(err, ErrMissingSchema):
		return "MissingSchemaError"
	case errors.Is(err, ErrSchema):
		return "SchemaError"
	case errors.Is(err, ErrStorage):
		return "StorageError"
	case errors.Is(err, ErrFileNotFound):
		return "FileNotFoundError"
	case errors.Is(err, ErrUnsupportedFormat):
		return "UnsupportedFormatError"
	default:
		return "InternalError"
	}
}
