// Package channels implements the server-side channel domain: identity and
// password generation, payload validation, storage serialization and the
// operations exposed through the HTTP API.
package channels

// File is one attachment held by a channel. Content is the decoded payload;
// base64 framing belongs to the transport and storage layers.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
	Content  []byte
}

// Channel is the shared payload: one text blob plus attachments.
type Channel struct {
	Text  string
	Files []File
}
