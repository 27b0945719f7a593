package service

import "errors"

// Typed failures surfaced at the calling boundary. Idempotent repeats
// (activating an already-active trigger and the like) are deliberate
// no-ops, not errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnsupportedTrigger = errors.New("unsupported trigger type")
	ErrTriggerTypeActive  = errors.New("another trigger of this type is already active")
	ErrMissingUser        = errors.New("user has no preference document")
	ErrAlreadyMember      = errors.New("user already in composite session")
	ErrNotAMember         = errors.New("user not in composite session")
	ErrDuplicateMember    = errors.New("duplicate user ids in member list")
	ErrNotEnoughMembers   = errors.New("composite session needs at least two members")
	ErrInsufficientData   = errors.New("not enough history to train a model")
)
