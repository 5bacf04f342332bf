package uastats

import "errors"

var (
	ErrUnknownDimension = errors.New("uastats: unknown dimension")
	ErrRecordFailed     = errors.New("uastats: failed to record event")
	ErrQueryFailed      = errors.New("uastats: failed to query counters")
)
