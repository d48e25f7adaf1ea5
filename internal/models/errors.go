package models

import "errors"

var (
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrAlreadyActive       = errors.New("alert session already active")
	ErrNotCancellable      = errors.New("alert session is not cancellable")
	ErrInvalidTransition   = errors.New("invalid alert state transition")
	ErrDispatch            = errors.New("alert dispatch failed")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrSessionNotFound     = errors.New("alert session not found")
)
