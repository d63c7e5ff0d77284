// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import (
	"fmt"

	cliuierrs "github.com/cppforlife/go-cli-ui/errors"
)

// Kind classifies an Error.
type Kind int

const (
	UnexpectedEvent Kind = iota
	InvalidVersion
	DuplicateTagDirective
	InvalidArgument
	InvalidState
	WriterError
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEvent:
		return "unexpected event"
	case InvalidVersion:
		return "invalid version directive"
	case DuplicateTagDirective:
		return "duplicate tag directive"
	case InvalidArgument:
		return "invalid argument"
	case InvalidState:
		return "invalid emitter state"
	case WriterError:
		return "writer error"
	default:
		return "error"
	}
}

// Error is returned by Emitter.Emit. It records which Kind of problem
// occurred, the emitter State active at the time, and (for WriterError) the
// underlying cause from the Sink.
type Error struct {
	Kind    Kind
	State   State
	Problem string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Problem)
	if e.State != invalidState {
		msg += fmt.Sprintf("\nin state %s", e.State)
	}
	if e.Cause != nil {
		msg += "\n" + e.Cause.Error()
	}
	return cliuierrs.NewMultiLineError(fmt.Errorf("%s", msg)).Error()
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, state State, problem string) *Error {
	return &Error{Kind: kind, State: state, Problem: problem}
}

func newWriterError(state State, cause error) *Error {
	return &Error{Kind: WriterError, State: state, Problem: "write failed", Cause: cause}
}
