package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	// ErrInvalidConfig wraps values that fail Validate.
	ErrInvalidConfig = errors.New("invalid skipoints config")
	// ErrLoadConfig wraps unreadable files and undecodable values.
	ErrLoadConfig = errors.New("load skipoints config")
)
