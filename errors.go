package conveyor

import "errors"

const Namespace = "conveyor"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrQueueClosed   = errors.New(Namespace + ": cannot push to a closed queue")
	ErrIncompleteResults = errors.New(
		Namespace + ": one or more result slots were never written",
	)
	ErrValidationFailed = errors.New(Namespace + ": results failed the consistency check")
	ErrInvalidKey       = errors.New(Namespace + ": fibonacci is defined for keys >= 1")
)
