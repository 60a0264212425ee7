package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors:
//   - ErrNotFound: the row or session does not exist
//   - ErrAlreadyDecided: a submission already left the pending state
//   - ErrInvalidState: the entity cannot accept the requested change
//
// Validation failures are not sentinels; see pkg/domain-errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyDecided = errors.New("already decided")
	ErrInvalidState   = errors.New("invalid state")
)
