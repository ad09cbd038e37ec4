package crypto

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "secret1"},
		{"short", "abc"},
		{"long", strings.Repeat("x", 70)},
		{"unicode", "hesloŘáž123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPasswordAsBcrypt(tt.password)
			if err != nil {
				t.Fatalf("HashPasswordAsBcrypt() error = %v", err)
			}
			if hash == tt.password || strings.Contains(hash, tt.password) {
				t.Errorf("hash %q contains the plaintext password", hash)
			}
			if !CheckPasswordHash(hash, tt.password) {
				t.Errorf("CheckPasswordHash() = false for the original password")
			}
			if CheckPasswordHash(hash, tt.password+"x") {
				t.Errorf("CheckPasswordHash() = true for a wrong password")
			}
		})
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPasswordAsBcrypt("secret1")
	if err != nil {
		t.Fatalf("HashPasswordAsBcrypt() error = %v", err)
	}
	second, err := HashPasswordAsBcrypt("secret1")
	if err != nil {
		t.Fatalf("HashPasswordAsBcrypt() error = %v", err)
	}
	if first == second {
		t.Errorf("two hashes of the same password are identical, salt missing")
	}
}
