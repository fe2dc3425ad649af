package worker

import (
	"strings"
	"testing"
	"time"
)

// RFC 6238 appendix B, SHA-1 column
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestTOTPCode_RFCVectors(t *testing.T) {
	tests := []struct {
		unix   int64
		digits int
		want   string
	}{
		{59, 8, "94287082"},
		{1111111109, 8, "07081804"},
		{1111111111, 8, "14050471"},
		{1234567890, 8, "89005924"},
		{2000000000, 8, "69279037"},
		{59, 7, "4287082"},
		{1111111109, 7, "7081804"},
		{59, 6, "287082"},
		{1234567890, 6, "005924"},
	}

	for _, tt := range tests {
		got, err := totpCode(rfcSecret, time.Unix(tt.unix, 0), tt.digits)
		if err != nil {
			t.Fatalf("totpCode(%d) error = %v", tt.unix, err)
		}
		if got != tt.want {
			t.Errorf("totpCode(%d, %d) = %q, want %q", tt.unix, tt.digits, got, tt.want)
		}
	}
}

func TestValidateTOTP_Skew(t *testing.T) {
	now := time.Unix(1234567890, 0)
	code, err := totpCode(rfcSecret, now, 6)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"same step", 0, true},
		{"one step late", totpStep, true},
		{"one step early", -totpStep, true},
		{"two steps late", 2 * totpStep, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateTOTP(rfcSecret, code, now.Add(tt.offset), 6); got != tt.want {
				t.Errorf("validateTOTP() = %v, want %v", got, tt.want)
			}
		})
	}

	if validateTOTP(rfcSecret, code[:5], now, 6) {
		t.Error("accepted a short code")
	}
	if validateTOTP("not base32!", code, now, 6) {
		t.Error("accepted a code for an undecodable secret")
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := generateKey("me@localhost", 8)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := generateKey("me@localhost", 8)

	if a.Secret == b.Secret {
		t.Error("two secrets are equal")
	}
	if len(a.Secret) != 32 {
		t.Errorf("len(secret) = %d, want 32", len(a.Secret))
	}
	if !strings.HasPrefix(a.URL, "otpauth://totp/nimbus:") {
		t.Errorf("URL = %q", a.URL)
	}
	for _, param := range []string{"secret=" + a.Secret, "digits=8", "issuer=nimbus"} {
		if !strings.Contains(a.URL, param) {
			t.Errorf("URL %q missing %s", a.URL, param)
		}
	}

	code, err := totpCode(a.Secret, time.Now(), 8)
	if err != nil {
		t.Fatalf("generated secret does not decode: %v", err)
	}
	if !validateTOTP(a.Secret, code, time.Now(), 8) {
		t.Error("code for a generated key does not validate")
	}
}

func TestGenerateRecoveryKey(t *testing.T) {
	key, err := generateRecoveryKey()
	if err != nil {
		t.Fatal(err)
	}

	groups := strings.Split(key, "-")
	if len(groups) != 4 {
		t.Fatalf("recovery key %q has %d groups, want 4", key, len(groups))
	}
	for _, g := range groups {
		if len(g) != 4 {
			t.Errorf("group %q has length %d", g, len(g))
		}
	}
	if normalizeRecoveryKey(" "+strings.ToLower(key)+" ") != strings.ReplaceAll(key, "-", "") {
		t.Error("normalizeRecoveryKey does not round-trip user input")
	}
}
