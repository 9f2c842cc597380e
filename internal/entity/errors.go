package entity

import "errors"

// ErrEmptyCompletion signals a completion response with no usable text.
// The connector treats it like any other transient failure: retried,
// and on exhaustion the caller falls back to the templated review.
var ErrEmptyCompletion = errors.New("completion returned no text")
