package game

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable rejection reason.
type Code string

const (
	CodeNotYourTurn           Code = "not_your_turn"
	CodeWrongPhase            Code = "wrong_phase"
	CodeWrongSetupStep        Code = "wrong_setup_step"
	CodeInsufficientResources Code = "insufficient_resources"
	CodeIllegalPlacement      Code = "illegal_placement"
	CodeInvalidTarget         Code = "invalid_target"
	CodeStaleAction           Code = "stale_action"
	CodeInvalidInput          Code = "invalid_input"
	CodeGameFull              Code = "game_full"
)

// HTTPStatus maps the code to a response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotYourTurn:
		return http.StatusForbidden
	case CodeWrongPhase,
		CodeWrongSetupStep,
		CodeInsufficientResources,
		CodeIllegalPlacement,
		CodeInvalidTarget,
		CodeStaleAction,
		CodeGameFull:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error is a rejected action. Message is safe to show to players.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrNotYourTurn           = &Error{Code: CodeNotYourTurn, Message: "it is not your turn"}
	ErrWrongPhase            = &Error{Code: CodeWrongPhase, Message: "not allowed in this phase"}
	ErrWrongSetupStep        = &Error{Code: CodeWrongSetupStep, Message: "wrong setup step"}
	ErrInsufficientResources = &Error{Code: CodeInsufficientResources, Message: "not enough resources"}
	ErrIllegalPlacement      = &Error{Code: CodeIllegalPlacement, Message: "illegal placement"}
	ErrInvalidTarget         = &Error{Code: CodeInvalidTarget, Message: "invalid target"}
	ErrStaleAction           = &Error{Code: CodeStaleAction, Message: "action no longer valid"}
	ErrInvalidInput          = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrGameFull              = &Error{Code: CodeGameFull, Message: "game is full"}
)

func reject(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of a rejection, or "" for any other error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
