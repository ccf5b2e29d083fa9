package utils

import "regexp"

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{2,63}$`)

// ValidateUserID checks that a user identifier is well formed. IDs are issued
// by the identity provider as opaque URL-safe tokens; the check here only
// guards against malformed path parameters, not against unknown users.
func ValidateUserID(userID string) bool {
	return userIDPattern.MatchString(userID)
}
