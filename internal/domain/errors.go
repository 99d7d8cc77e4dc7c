package domain

import (
	"errors"
	"fmt"
)

// UnauthorizedError marks a 401 from the leave API. The session has already
// been invalidated by the time callers see this.
type UnauthorizedError struct {
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Err != nil {
		return "unauthorized: " + e.Err.Error()
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

// ValidationError carries the 422 field->messages map for form display.
type ValidationError struct {
	Fields map[string][]string
	Err    error
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// RequestError covers the remaining 4xx responses (business-rule rejections).
type RequestError struct {
	Status int
	Msg    string
	Err    error
}

func (e RequestError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("request rejected (status %d)", e.Status)
}

func (e RequestError) Unwrap() error { return e.Err }

// ServerError covers 5xx responses from the leave API.
type ServerError struct {
	Status int
	Err    error
}

func (e ServerError) Error() string {
	return fmt.Sprintf("leave API server fault (status %d)", e.Status)
}

func (e ServerError) Unwrap() error { return e.Err }

// ConnectivityError means no HTTP response was received at all, so callers
// can show a connectivity-specific message instead of a generic failure.
type ConnectivityError struct {
	Err error
}

func (e ConnectivityError) Error() string {
	if e.Err != nil {
		return "leave API unreachable: " + e.Err.Error()
	}
	return "leave API unreachable"
}

func (e ConnectivityError) Unwrap() error { return e.Err }

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// ValidationFields extracts the field map from a wrapped ValidationError.
func ValidationFields(err error) map[string][]string {
	var target ValidationError
	if errors.As(err, &target) {
		return target.Fields
	}
	return nil
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsServerFault(err error) bool {
	var target ServerError
	return errors.As(err, &target)
}

func IsConnectivity(err error) bool {
	var target ConnectivityError
	return errors.As(err, &target)
}
