// Package cli implements the interactive lynkc terminal client.
//
// The App type wires the HTTP client, the credential cache, the poll engine
// and the session controller together, then drives a line-oriented REPL.
// Input helpers (GetSimpleText, GetPassword, GetMultiline) and the output
// function are package variables so tests can run the full command surface
// without a terminal.
//
// Set LYNKC_CHANNEL to a channel link to join it on startup.
package cli
