// Package ssmerrors contains generic errors returned by code talking to the SSM REST backend.
// Callers should look for the error types defined in this file with errors.As rather than
// inspecting error strings.
//
// If multiple errors occur in some function (e.g., several invalid filter flags), that
// function should return an error of type multierror.Error from package
// github.com/hashicorp/go-multierror that encapsulates those individual errors.
package ssmerrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "rule" or "action"
	Value   string // Resource identifier, e.g., "42"
	Message string
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "submissionTime"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", fmt.Sprint(err.Value), err.Name)
	}
	return fmt.Sprintf("value %q is invalid for field %q; %s", fmt.Sprint(err.Value), err.Name, err.Message)
}

// ErrUnauthorized is returned when the backend rejects the supplied credentials.
type ErrUnauthorized struct {
	Username string
	Message  string
}

func (err *ErrUnauthorized) Error() (s string) {
	if err.Username != "" {
		s = fmt.Sprintf("user %q is not authorized", err.Username)
	} else {
		s = "request is not authorized"
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrServer wraps any non-successful response the other types don't cover.
type ErrServer struct {
	Status  int
	Code    string
	Message string
}

func (err *ErrServer) Error() string {
	s := fmt.Sprintf("server responded with status %d", err.Status)
	if err.Code != "" {
		s += fmt.Sprintf(" (%s)", err.Code)
	}
	if err.Message != "" {
		s += fmt.Sprintf(": %s", err.Message)
	}
	return s
}

// errorResponse is the body the backend sends alongside non-2xx responses.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromResponse converts a non-2xx status and its body into one of the errors above.
// resourceType and resourceId are used to populate ErrNotFound and may be empty.
func FromResponse(status int, body []byte, resourceType string, resourceId string) error {
	resp := errorResponse{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			resp.Message = strings.TrimSpace(string(body))
		}
	}

	switch status {
	case http.StatusNotFound:
		return errors.WithStack(&ErrNotFound{Type: resourceType, Value: resourceId, Message: resp.Message})
	case http.StatusBadRequest:
		return errors.WithStack(&ErrInvalidArgument{Name: resp.Code, Value: resourceId, Message: resp.Message})
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.WithStack(&ErrUnauthorized{Message: resp.Message})
	default:
		return errors.WithStack(&ErrServer{Status: status, Code: resp.Code, Message: resp.Message})
	}
}

// IsNotFound reports whether err, or any error in its chain, is an ErrNotFound.
func IsNotFound(err error) bool {
	var e *ErrNotFound
	return errors.As(err, &e)
}

// IsRetryable reports whether a request that failed with err may succeed if sent again.
// Only 5xx server errors and 429 are considered retryable; transport errors are classified by the caller.
func IsRetryable(err error) bool {
	var e *ErrServer
	if errors.As(err, &e) {
		return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
	}
	return false
}
