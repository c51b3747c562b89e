package services

import "errors"

// Errors shared across the command layer. Placement conflicts and
// template problems carry their own typed errors in the scheduling and
// brackets packages; these cover reference validation.
var (
	ErrDivisionNotFound = errors.New("division not found")
	ErrGroupNotFound    = errors.New("group not found")
)
