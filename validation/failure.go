/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package validation

import (
	"errors"
	"fmt"
)

// Kind classifies why a validation run stopped.
type Kind int

const (
	// KindInput means a title or commit message has no ticket reference.
	KindInput Kind = iota
	// KindConsistency means a commit references a different ticket than the
	// pull request.
	KindConsistency
	// KindPolicy means the ticket workflow state or the commit count is not
	// allowed.
	KindPolicy
	// KindTransport means a collaborator call failed.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConsistency:
		return "consistency"
	case KindPolicy:
		return "policy"
	case KindTransport:
		return "transport"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Failure is returned by Validate when a check fails. Message is meant for
// the pull request author.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

func failf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure extracts the *Failure from err. Errors that are not failures are
// reported as transport failures wrapping err.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: KindTransport, Message: "validation aborted", Err: err}
}
