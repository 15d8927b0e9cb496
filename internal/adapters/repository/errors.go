package repository

import "errors"

// Sentinel kinds for session store errors. These allow errors.Is from callers.
var (
	ErrSessionNotFound = errors.New("session not found")
)
