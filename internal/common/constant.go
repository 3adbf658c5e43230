package common

// Cookie names used by the HTTP API.
const (
	SessionCookieName   = "session"
	ChallengeCookieName = "challenge_ctx"
	CsrfCookieName      = "csrf"
)

// CsrfHeaderName carries the double-submit CSRF token on mutating requests.
const CsrfHeaderName = "X-CSRF"

// NonceMessagePrefix is the literal prefix of the login message. The signer
// must reproduce prefix+nonce byte-for-byte.
const NonceMessagePrefix = "Sign this nonce to login: "
