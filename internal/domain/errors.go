package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Ingestion errors. These are no-op signals to the caller, not fatal:
	// a rejected event mutates neither the ledger nor any streak.
	ErrDuplicateEvent = errors.New("event already scored")
	ErrFutureEvent    = errors.New("workout completion is in the future")
	ErrMissingUser    = errors.New("event has no user id")
	ErrMissingEventID = errors.New("event has no id")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrSelfPartner  = errors.New("cannot partner with yourself")
	ErrNoPartner    = errors.New("user has no accountability partner")

	// Generator errors
	ErrGeneratorDisabled = errors.New("text generator is disabled")
	ErrGeneratorTimeout  = errors.New("text generator timed out")
)
