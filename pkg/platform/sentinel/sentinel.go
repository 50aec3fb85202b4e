package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and publishers return
// these (optionally wrapped) so services and handlers can translate them
// into domain errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrConflict: record with the same identity already exists
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
