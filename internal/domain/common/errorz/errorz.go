package errorz

import "errors"

var (
	Forbidden        = errors.New("forbidden")
	NotFound         = errors.New("not found")
	MissingRecipient = errors.New("notification recipient is required")
	MissingMessage   = errors.New("notification message is required")
	MissingDedupKey  = errors.New("notification event and day key are required")
)
