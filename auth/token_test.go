package auth

import (
	"attendance/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(42)
	if err != nil {
		t.Fatal(err)
	}
	id, err := ParseToken(token)
	if err != nil || id != 42 {
		t.Errorf("ParseToken() = %d, %v", id, err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	sign := func(claims jwt.RegisteredClaims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(jwt.RegisteredClaims{Subject: "1", ExpiresAt: future}, config.JWT_SECRET+"x")},
		{"expired", sign(jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}, config.JWT_SECRET)},
		{"non numeric subject", sign(jwt.RegisteredClaims{Subject: "abc", ExpiresAt: future}, config.JWT_SECRET)},
		{"missing subject", sign(jwt.RegisteredClaims{ExpiresAt: future}, config.JWT_SECRET)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token); err != ErrInvalidToken {
				t.Errorf("ParseToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"Basic abc":   "",
		"":            "",
		"Bearer":      "",
	} {
		if got := bearerToken(header); got != want {
			t.Errorf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
