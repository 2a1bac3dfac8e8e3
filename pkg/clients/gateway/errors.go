package gateway

import "errors"

// ErrPendingTransaction is returned when the gateway knows the transaction
// but has not seen it in a block yet.
var ErrPendingTransaction = errors.New("gateway: transaction is pending")
