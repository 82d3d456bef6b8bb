package services

import "errors"

// Sentinels used across services so controllers can map failures to status
// codes with errors.Is. ErrValidation covers rejected input; ErrStorage
// covers database failures (the caller decides whether to retry).
var (
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
	ErrNotFound   = errors.New("not found")
)
