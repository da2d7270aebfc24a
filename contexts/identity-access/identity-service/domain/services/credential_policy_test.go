package services

import (
	"errors"
	"strings"
	"testing"

	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
)

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name         string
		username     string
		password     string
		confirmation string
		want         error
	}{
		{"valid", "alice_01", "Secret123", "Secret123", nil},
		{"short username", "al", "Secret123", "Secret123", domainerrors.ErrInvalidUsername},
		{"long username", strings.Repeat("a", 31), "Secret123", "Secret123", domainerrors.ErrInvalidUsername},
		{"username with dash", "dev-admin", "Secret123", "Secret123", domainerrors.ErrInvalidUsername},
		{"non ascii username", "alicé", "Secret123", "Secret123", domainerrors.ErrInvalidUsername},
		{"short password", "alice", "Sec1", "Sec1", domainerrors.ErrWeakPassword},
		{"no uppercase", "alice", "secret123", "secret123", domainerrors.ErrWeakPassword},
		{"no digit", "alice", "SecretPass", "SecretPass", domainerrors.ErrWeakPassword},
		{"non ascii letters and digit", "alice", "ÄÖÜäöüß٣", "ÄÖÜäöüß٣", domainerrors.ErrWeakPassword},
		{"non ascii digit only", "alice", "Secret٣٣٣", "Secret٣٣٣", domainerrors.ErrWeakPassword},
		{"long password", "alice", "Aa1" + strings.Repeat("x", 126), "", domainerrors.ErrWeakPassword},
		{"mismatch", "alice", "Secret123", "Secret124", domainerrors.ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRegistration(tc.username, tc.password, tc.confirmation)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
