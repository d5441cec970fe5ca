package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrInputNotFound marks an input file that does not exist.
	ErrInputNotFound = stderrors.New("input not found")
	// ErrMalformedInput marks an input file that could not be decoded.
	ErrMalformedInput = stderrors.New("malformed input")
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapInputError wraps a failure to open or read an input file.
// Missing files are tagged with ErrInputNotFound.
func WrapInputError(err error, path string) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, fs.ErrNotExist) {
		return UserFriendlyError{
			Message: fmt.Sprintf("File %s not found", path),
			Reason:  "The path does not exist or is not reachable",
			Hint:    "Check the path passed on the command line",
			Err:     fmt.Errorf("%w: %w", ErrInputNotFound, err),
		}
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read %s", path),
		Reason:  extractReadReason(err),
		Err:     err,
	}
}

// WrapMalformedError wraps a decode failure of an input document.
func WrapMalformedError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Error decoding JSON in %s", path),
		Reason:  extractDecodeReason(err),
		Hint:    "The session log must be a JSON object with a \"packets\" array",
		Try:     fmt.Sprintf("python3 -m json.tool %s", path),
		Err:     fmt.Errorf("%w: %w", ErrMalformedInput, err),
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Run `pktprof init-config` to write a file with every key",
		Try:     "Run without --config to use the built-in defaults",
		Err:     err,
	}
}

// IsNotFound reports whether err was produced for a missing input file.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrInputNotFound)
}

// IsMalformed reports whether err was produced for an undecodable input file.
func IsMalformed(err error) bool {
	return stderrors.Is(err, ErrMalformedInput)
}

func extractReadReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "permission denied") {
		return "Permission denied - the file is not readable by this user"
	}
	if strings.Contains(errStr, "is a directory") {
		return "The path points to a directory, not a file"
	}

	return "File could not be read"
}

func extractDecodeReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "unexpected end of JSON input") {
		return "The document is truncated"
	}
	if strings.Contains(errStr, "cannot unmarshal") {
		return "A field has the wrong type"
	}
	if strings.Contains(errStr, "invalid character") {
		return "The document is not valid JSON"
	}

	return "The document could not be decoded"
}
