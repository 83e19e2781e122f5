package core

import (
	"errors"
)

var (
	// ErrUnknown is used where a collaborator failed without a more
	// specific reason being available.
	ErrUnknown = errors.New("unknown")

	// ErrTooManyGroups is returned by the dirty tracker constructor when
	// asked for more update groups than fit in its bitmap (spec.md §4.1:
	// at most 64 groups).
	ErrTooManyGroups = errors.New("more update groups requested than the dirty bitmap can hold")

	// ErrShaderCompileFailed names a failed shader compilation (spec.md §7,
	// class 3) for shader-cache implementations to report. The shader
	// Compiler does not use it: a failed Module carries the translate
	// backend's own error.
	ErrShaderCompileFailed = errors.New("shader compilation failed")

	// ErrBindingIncompatible names a bound resource that disagrees with the
	// active shader specialization (spec.md §4.5). The Draw Preamble does
	// not check for it: it reads CommitResult.Incompatible instead.
	ErrBindingIncompatible = errors.New("resource binding incompatible with shader specialization")
)
