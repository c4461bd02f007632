// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package sysfs

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrUnreadableField = errors.New("unreadable field")
	ErrUnparsableField = errors.New("unparsable field")

	// ErrEmptyField is a missing field whose file exists but holds no text.
	ErrEmptyField = fmt.Errorf("%w: empty", ErrMissingField)
)

// FieldError describes a failure to acquire one attribute of a device.
type FieldError struct {
	Address string
	Field   string
	// Err is one of the sentinel errors of this package.
	Err   error
	Cause error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v: %v", e.Address, e.Field, e.Err, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Address, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Reason returns a short label for the kind of field error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnparsableField):
		return "unparsable"
	case errors.Is(err, ErrUnreadableField):
		return "unreadable"
	case errors.Is(err, ErrMissingField):
		return "missing"
	default:
		return "unknown"
	}
}
