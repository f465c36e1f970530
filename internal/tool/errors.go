package tool

import "errors"

// ErrToolAlreadyRegistered is returned when a tool name is registered twice.
var ErrToolAlreadyRegistered = errors.New("tool already registered")

// ErrInvalidTool is returned when a definition fails validation.
var ErrInvalidTool = errors.New("invalid tool definition")
