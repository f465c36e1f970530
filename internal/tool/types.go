// Package tool holds the static registry of provisioning operations and the
// dispatcher that resolves action directives against it. The registry is the
// only path from an assistant directive to a real operation; anything not in
// the table cannot run.
package tool

import (
	"context"
	"fmt"
)

// ErrorKind classifies why a dispatch failed.
type ErrorKind string

const (
	// ErrorKindNone marks a successful result.
	ErrorKindNone ErrorKind = ""
	// ErrorKindUnknownTool marks a directive naming a function that is not
	// in the registry.
	ErrorKindUnknownTool ErrorKind = "unknown_tool"
	// ErrorKindExecutorFailure marks a provisioning call that failed
	// (validation, authorization, network, timeout).
	ErrorKindExecutorFailure ErrorKind = "executor_failure"
)

// Result is the outcome of one dispatched action. Executors convert every
// fault into a failed Result; a panic crossing the executor boundary is a
// bug, not a handled failure.
type Result struct {
	FunctionName string
	Success      bool
	ResourceID   string
	Message      string
	ErrorKind    ErrorKind
}

// Failure builds a failed result for a function with a readable message.
func Failure(function string, kind ErrorKind, message string) Result {
	return Result{FunctionName: function, Success: false, ErrorKind: kind, Message: message}
}

// Executor runs one provisioning operation. Parameters arrive as a flat map
// read from the directive; missing parameters are simply absent, letting the
// executor apply its own defaults.
type Executor func(ctx context.Context, params map[string]interface{}) Result

// Definition describes one entry of the static tool table.
type Definition struct {
	Name        string
	Description string

	// ParamNames lists the parameter names the executor reads, in call
	// order. The dispatcher passes through only these keys.
	ParamNames []string

	// CreatesResources marks tools gated behind plan confirmation.
	// Price/lookup tools leave it false and dispatch unconditionally.
	CreatesResources bool

	Executor Executor
}

// Validate checks the definition is complete enough to register.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTool)
	}
	if d.Executor == nil {
		return fmt.Errorf("%w: executor is required for %s", ErrInvalidTool, d.Name)
	}
	return nil
}
