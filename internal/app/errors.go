package app

import "errors"

var (
	ErrEmptyContent       = errors.New("message content is empty")
	ErrContentTooLong     = errors.New("message content is too long")
	ErrUnknownRecipient   = errors.New("recipient is not in the directory")
	ErrLoginRequired      = errors.New("login required")
	ErrFeatureUnavailable = errors.New("feature is not configured")
)
