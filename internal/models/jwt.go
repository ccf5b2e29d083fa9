package models

// JWTClaims is the decoded claims segment of the gateway-verified access
// token. Only the fields this service reads are mapped; SUB carries the
// user ID the per-user routes are keyed by.
type JWTClaims struct {
	JTI          string   `json:"jti"`
	Exp          int64    `json:"exp"`
	IAT          int64    `json:"iat"`
	ISS          string   `json:"iss"`
	AUD          []string `json:"aud"`
	SUB          string   `json:"sub"`
	AZP          string   `json:"azp"`
	SessionState string   `json:"session_state"`
	RealmAccess  struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	Scope             string `json:"scope"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}
