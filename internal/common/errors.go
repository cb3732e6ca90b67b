// Package common defines shared constants and sentinel errors used across
// client and server layers of Lynkc. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Channel-level errors.
	ErrorNotFound     = errors.New("channel not found")
	ErrorUnauthorized = errors.New("invalid channel password")

	// Payload validation errors (pre-flight, never reach the network on the client).
	ErrorPayloadTooLarge = errors.New("payload too large")
	ErrorInvalidFileData = errors.New("invalid file data encoding")

	// Transport errors. Retriable: the poll loop keeps going.
	ErrorUnavailable = errors.New("server unavailable")

	// Local clipboard errors. Trigger a download fallback, never fatal.
	ErrorClipboardUnavailable = errors.New("clipboard unavailable")
)
