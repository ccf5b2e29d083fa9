package utils

import "testing"

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   bool
	}{
		{
			name:   "UUID style",
			userID: "7b0c9f1e-4a1d-4f55-9e34-2f1b8a6c0d12",
			want:   true,
		},
		{
			name:   "Short alphanumeric",
			userID: "usr_12345",
			want:   true,
		},
		{
			name:   "Empty",
			userID: "",
			want:   false,
		},
		{
			name:   "Too short",
			userID: "ab",
			want:   false,
		},
		{
			name:   "Leading dash",
			userID: "-abc123",
			want:   false,
		},
		{
			name:   "Path traversal characters",
			userID: "../etc/passwd",
			want:   false,
		},
		{
			name:   "Whitespace",
			userID: "user 123",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateUserID(tt.userID); got != tt.want {
				t.Errorf("ValidateUserID(%q) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}
