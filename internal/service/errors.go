package service

import "errors"

var (
	// ErrInvalidArgument marks a missing or malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingCredential means the server has no places API key.
	ErrMissingCredential = errors.New("missing places api key")
	// ErrOutOfRange marks coordinates outside the WGS84 range.
	ErrOutOfRange = errors.New("coordinates out of range")
)
