package crypto

import "errors"

// ErrKeyUnavailable is returned when a signing operation is requested from a
// provider that holds no private key material.
var ErrKeyUnavailable = errors.New("crypto: signing key unavailable")
