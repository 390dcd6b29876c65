// Package errors provides error handling for genex.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotTested) {
//	    // handle untested SNP
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for use across genex.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested record does not exist in the store
	ErrNotFound = New("not found")

	// ErrUnrecognizedFormat indicates a file does not resemble any format
	// genex knows how to import. Imports abort and leave prior data untouched.
	ErrUnrecognizedFormat = New("unrecognized file format")

	// ErrNotTested indicates no genotype call exists for the requested rsid:
	// the source array did not test that position.
	ErrNotTested = New("snp not tested")

	// ErrNotAnnotated indicates a genotype call exists but the curated
	// annotation table has no entry for its rsid.
	ErrNotAnnotated = New("snp not annotated")

	// ErrAmbiguousRoot indicates the family tree has multiple disconnected
	// components and no individual was named, so no root can be inferred.
	ErrAmbiguousRoot = New("ambiguous tree root")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsUnrecognizedFormat checks if an error is or wraps ErrUnrecognizedFormat.
func IsUnrecognizedFormat(err error) bool {
	return err != nil && Is(err, ErrUnrecognizedFormat)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewFormatError creates an unrecognized-format error with a formatted message
func NewFormatError(format string, args ...interface{}) error {
	return Wrap(ErrUnrecognizedFormat, Newf(format, args...).Error())
}
