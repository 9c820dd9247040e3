package common

// ApiKeyHeaderName is the HTTP header carrying the shared API access key
// required on every request to the notes service.
const ApiKeyHeaderName = "X-Api-Key"

// SessionEvent names carried over the session-events channel.
const (
	SessionEventSignedIn  = "signed_in"
	SessionEventSignedOut = "signed_out"
)
