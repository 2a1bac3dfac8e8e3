package uploader

import "errors"

var (
	// ErrStatusCodeNotOk is returned when a gateway post never received a 2xx
	// response within the configured attempts.
	ErrStatusCodeNotOk = errors.New("uploader: gateway did not accept the request")

	// ErrChunkUploadFailed is returned when at least one chunk exhausted its
	// retries during a chunked submission.
	ErrChunkUploadFailed = errors.New("uploader: chunk upload failed")

	// ErrDataRootMismatch is returned when the chunk tree rebuilt from the
	// payload does not match the data_root the transaction was signed over.
	ErrDataRootMismatch = errors.New("uploader: rebuilt data root does not match transaction")
)
