package core

import (
	"errors"
)

var (
	ErrNoGraphicsBackend = errors.New("graphics backend unavailable")
	ErrShaderCompile     = errors.New("shader compilation failed")
	ErrProgramLink       = errors.New("shader program link failed")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnknownDemo       = errors.New("unknown demo")
	ErrUnknownRenderer   = errors.New("unknown renderer type")
	ErrNotInitialized    = errors.New("not initialized")
)
