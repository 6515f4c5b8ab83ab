package bootstrap

import "errors"

var (
	// ErrStatus indicates a non-success HTTP response.
	ErrStatus = errors.New("unexpected response status")
	// ErrDecode indicates the body is not the expected JSON document.
	ErrDecode = errors.New("decode bootstrap payload")
	// ErrInvalidPayload indicates a required key is missing.
	ErrInvalidPayload = errors.New("invalid bootstrap payload")
)
