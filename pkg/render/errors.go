package render

import "errors"

var (
	// ErrIndexOutOfRange is returned by AsciiBuffer accessors for
	// coordinates or indices outside the buffer.
	ErrIndexOutOfRange = errors.New("render: index out of range")

	// ErrPresentation wraps failures of the terminal writer.
	ErrPresentation = errors.New("render: presentation failed")

	// ErrAlreadyRunning is returned when a renderer is started twice.
	ErrAlreadyRunning = errors.New("render: renderer already running")

	// ErrInvalidConfig is returned by constructors given unusable settings.
	ErrInvalidConfig = errors.New("render: invalid configuration")
)
