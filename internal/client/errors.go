package client

import "errors"

// ErrStoreUnavailable marks transport-level failures against the Medication
// Store, as opposed to malformed payloads.
var ErrStoreUnavailable = errors.New("medication store unavailable")
