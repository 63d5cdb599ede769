package core

import "errors"

var (
	// ErrInvalidLevelData is returned when a level definition is malformed.
	ErrInvalidLevelData = errors.New("invalid level data")

	// ErrUnplayableLevel is returned when no board without runs and with at
	// least one legal swap could be generated within the retry cap.
	ErrUnplayableLevel = errors.New("unplayable level")
)
