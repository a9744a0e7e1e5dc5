package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with digits", "alice42", false},
		{"valid with underscore", "alice_b", false},
		{"valid with hyphen", "alice-b", false},
		{"too short", "ab", true},
		{"too long", "a123456789012345678901234567890", true},
		{"spaces", "alice smith", true},
		{"unicode", "алиса", true},
		{"leading underscore", "_alice", true},
		{"trailing hyphen", "alice-", true},
		{"reserved: api", "api", true},
		{"reserved: metrics", "metrics", true},
		{"reserved: profiles", "profiles", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
