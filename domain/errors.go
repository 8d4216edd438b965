package domain

import "errors"

var (
	// ErrMalformedShout indicates a request body that is not a shout envelope.
	ErrMalformedShout = errors.New("malformed shout envelope")

	// ErrMissingCredentials indicates the relay has no push credentials configured.
	ErrMissingCredentials = errors.New("missing push credentials")

	// ErrEmptyKey indicates the REST API key resolved to an empty string.
	ErrEmptyKey = errors.New("api key is empty")
)
