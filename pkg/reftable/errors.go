package reftable

import "errors"

var (
	ErrTableNotFound = errors.New("reference table not found")
	ErrInvalidTable  = errors.New("invalid reference table")
)
