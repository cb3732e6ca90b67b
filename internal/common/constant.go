package common

// PasswordHeaderName is the HTTP header carrying the channel password on
// fetch, update and file-delete requests.
const PasswordHeaderName = "X-Channel-Password"

// MaxChannelBytes is the combined text+files byte budget for one channel.
// The client-side enforcer and the server-side validator must agree on this
// exact value or the UI misreports rejections at the boundary.
const MaxChannelBytes = 100 * 1024 * 1024

// MaxRequestBytes caps request bodies with headroom for base64 expansion.
const MaxRequestBytes = 200 * 1024 * 1024
