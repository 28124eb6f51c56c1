package domain

import "errors"

var (
	ErrInvalidMedication = errors.New("invalid medication")
	ErrInvalidFrequency  = errors.New("invalid frequency rule")
	ErrDoseNotFound      = errors.New("dose not found")
	ErrInvalidTransition = errors.New("invalid dose status transition")
	ErrSchedulingFailed  = errors.New("scheduling failed")
)
