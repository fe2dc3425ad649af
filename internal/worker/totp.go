package worker

import (
	"crypto/rand"
	"encoding/base32"
	"io"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	issuer     = "nimbus"
	totpPeriod = 30
	totpStep   = totpPeriod * time.Second
	totpSkew   = 1

	// MinCodeLength and MaxCodeLength bound the digits RFC 4226 allows.
	MinCodeLength = 6
	MaxCodeLength = 8
)

// TwoFactorKey is a freshly generated enrolment key.
type TwoFactorKey struct {
	// Secret is the base32 secret for manual entry.
	Secret string
	// URL is the otpauth:// URI authenticator apps scan.
	URL string
}

func validateOpts(digits int) totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.Digits(digits),
		Algorithm: otp.AlgorithmSHA1,
	}
}

// generateKey returns a random 160-bit TOTP key for accountName.
func generateKey(accountName string, digits int) (TwoFactorKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      totpPeriod,
		Digits:      otp.Digits(digits),
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return TwoFactorKey{}, err
	}
	return TwoFactorKey{Secret: key.Secret(), URL: key.URL()}, nil
}

// totpCode returns the code for the step containing t.
func totpCode(secret string, t time.Time, digits int) (string, error) {
	return totp.GenerateCodeCustom(secret, t, validateOpts(digits))
}

// validateTOTP accepts codes from the current step and one step either side.
func validateTOTP(secret, code string, t time.Time, digits int) bool {
	if len(code) != digits {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, t, validateOpts(digits))
	return err == nil && ok
}

var recoveryEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// generateRecoveryKey returns a key like ABCD-EFGH-IJKL-MNOP.
func generateRecoveryKey() (string, error) {
	b := make([]byte, 10)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	raw := recoveryEncoding.EncodeToString(b)

	groups := make([]string, 0, len(raw)/4)
	for i := 0; i < len(raw); i += 4 {
		groups = append(groups, raw[i:i+4])
	}
	return strings.Join(groups, "-"), nil
}

func normalizeRecoveryKey(key string) string {
	key = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(key))
	return strings.ToUpper(key)
}
