package tx

import "errors"

var (
	// ErrUnsignedTransaction indicates an operation that needs a signed
	// transaction was given one with no signature or id.
	ErrUnsignedTransaction = errors.New("tx: transaction is not signed")

	// ErrAlreadySigned indicates a sign request on a transaction that
	// already carries a signature. Call ClearSignature to re-sign under a
	// fresh anchor.
	ErrAlreadySigned = errors.New("tx: transaction is already signed")

	// ErrInvalidSignature indicates the signature does not verify against
	// the transaction's owner and content.
	ErrInvalidSignature = errors.New("tx: signature verification failed")

	// ErrEncoding indicates a field cannot be represented in its canonical
	// wire form.
	ErrEncoding = errors.New("tx: field cannot be canonically encoded")
)
