package worker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is the signed-in user as the UI shows it.
type Account struct {
	Email             string
	TwoFactorEnabled  bool
	HasPassword       bool
	CreatedAt         time.Time
	PasswordChangedAt time.Time
}

// Settings are free-form user preferences.
type Settings map[string]string

type accountRow struct {
	email             string
	passwordHash      string
	secret            string
	pendingSecret     string
	recoveryHash      string
	createdAt         int64
	passwordChangedAt int64
}

func (w *Worker) loadAccount(ctx context.Context) (accountRow, error) {
	var row accountRow
	err := w.db.QueryRowContext(ctx, `
		SELECT email, password_hash, two_factor_secret, pending_secret, recovery_hash, created_at, password_changed_at
		FROM account WHERE id = 1`).
		Scan(&row.email, &row.passwordHash, &row.secret, &row.pendingSecret, &row.recoveryHash, &row.createdAt, &row.passwordChangedAt)
	return row, err
}

// FetchAccount returns the account.
func (w *Worker) FetchAccount(ctx context.Context) (Account, error) {
	row, err := w.loadAccount(ctx)
	if err != nil {
		return Account{}, opErr("fetch_account", err)
	}

	account := Account{
		Email:            row.email,
		TwoFactorEnabled: row.secret != "",
		HasPassword:      row.passwordHash != "",
		CreatedAt:        time.Unix(row.createdAt, 0),
	}
	if row.passwordChangedAt > 0 {
		account.PasswordChangedAt = time.Unix(row.passwordChangedAt, 0)
	}
	return account, nil
}

// FetchSettings returns all stored settings.
func (w *Worker) FetchSettings(ctx context.Context) (Settings, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, opErr("fetch_settings", err)
	}
	defer rows.Close()

	settings := make(Settings)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, opErr("fetch_settings", err)
		}
		settings[key] = value
	}
	return settings, opErr("fetch_settings", rows.Err())
}

// SaveSetting stores one setting.
func (w *Worker) SaveSetting(ctx context.Context, key, value string) error {
	_, err := w.db.ExecContext(ctx, "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return opErr("save_setting", err)
}

// ChangePassword replaces the password. An account without a password
// accepts an empty current password.
func (w *Worker) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	const op = "change_password"

	if strings.TrimSpace(newPassword) == "" {
		return opErr(op, ErrEmptyPassword)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	row, err := w.loadAccount(ctx)
	if err != nil {
		return opErr(op, err)
	}

	if row.passwordHash == "" {
		if currentPassword != "" {
			return opErr(op, ErrInvalidPassword)
		}
	} else if err := bcrypt.CompareHashAndPassword([]byte(row.passwordHash), []byte(currentPassword)); err != nil {
		return opErr(op, ErrInvalidPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return opErr(op, err)
	}

	_, err = w.db.ExecContext(ctx,
		"UPDATE account SET password_hash = ?, password_changed_at = ? WHERE id = 1",
		string(hash), w.now().Unix())
	if err != nil {
		return opErr(op, err)
	}

	w.logger.Info("password changed")
	return nil
}

// GenerateTwoFactorKey creates a new key to enrol with. It replaces any
// earlier key that was never confirmed.
func (w *Worker) GenerateTwoFactorKey(ctx context.Context) (TwoFactorKey, error) {
	const op = "generate_two_factor_key"

	w.mu.Lock()
	defer w.mu.Unlock()

	row, err := w.loadAccount(ctx)
	if err != nil {
		return TwoFactorKey{}, opErr(op, err)
	}
	if row.secret != "" {
		return TwoFactorKey{}, opErr(op, ErrTwoFactorEnabled)
	}

	key, err := generateKey(row.email, w.digits)
	if err != nil {
		return TwoFactorKey{}, opErr(op, err)
	}

	if _, err := w.db.ExecContext(ctx, "UPDATE account SET pending_secret = ? WHERE id = 1", key.Secret); err != nil {
		return TwoFactorKey{}, opErr(op, err)
	}
	return key, nil
}

// EnableTwoFactor confirms the pending key with a code from it and returns
// the recovery key. The recovery key is only ever returned here.
func (w *Worker) EnableTwoFactor(ctx context.Context, code string) (string, error) {
	const op = "enable_two_factor"

	w.mu.Lock()
	defer w.mu.Unlock()

	row, err := w.loadAccount(ctx)
	if err != nil {
		return "", opErr(op, err)
	}
	switch {
	case row.secret != "":
		return "", opErr(op, ErrTwoFactorEnabled)
	case row.pendingSecret == "":
		return "", opErr(op, ErrNoPendingKey)
	case !validateTOTP(row.pendingSecret, strings.TrimSpace(code), w.now(), w.digits):
		return "", opErr(op, ErrInvalidTwoFactorCode)
	}

	recoveryKey, err := generateRecoveryKey()
	if err != nil {
		return "", opErr(op, err)
	}
	recoveryHash, err := bcrypt.GenerateFromPassword([]byte(normalizeRecoveryKey(recoveryKey)), bcrypt.DefaultCost)
	if err != nil {
		return "", opErr(op, err)
	}

	_, err = w.db.ExecContext(ctx,
		"UPDATE account SET two_factor_secret = pending_secret, pending_secret = '', recovery_hash = ? WHERE id = 1",
		string(recoveryHash))
	if err != nil {
		return "", opErr(op, err)
	}

	w.logger.Info("two-factor enabled")
	return recoveryKey, nil
}

// DisableTwoFactor turns two-factor off. It accepts a current code or the
// recovery key.
func (w *Worker) DisableTwoFactor(ctx context.Context, code string) error {
	const op = "disable_two_factor"

	w.mu.Lock()
	defer w.mu.Unlock()

	row, err := w.loadAccount(ctx)
	if err != nil {
		return opErr(op, err)
	}
	if row.secret == "" {
		return opErr(op, ErrTwoFactorDisabled)
	}

	if !w.checkSecondFactor(row, code) {
		return opErr(op, ErrInvalidTwoFactorCode)
	}

	_, err = w.db.ExecContext(ctx,
		"UPDATE account SET two_factor_secret = '', pending_secret = '', recovery_hash = '' WHERE id = 1")
	if err != nil {
		return opErr(op, err)
	}

	w.logger.Info("two-factor disabled")
	return nil
}

func (w *Worker) checkSecondFactor(row accountRow, code string) bool {
	code = strings.TrimSpace(code)
	if validateTOTP(row.secret, code, w.now(), w.digits) {
		return true
	}
	if row.recoveryHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(row.recoveryHash), []byte(normalizeRecoveryKey(code)))
	return err == nil
}

// CurrentCode returns the code the authenticator app would show for the
// pending or active key. It exists for local setups without an app.
func (w *Worker) CurrentCode(ctx context.Context) (string, error) {
	row, err := w.loadAccount(ctx)
	if err != nil {
		return "", opErr("current_code", err)
	}

	secret := row.secret
	if secret == "" {
		secret = row.pendingSecret
	}
	if secret == "" {
		return "", opErr("current_code", ErrTwoFactorDisabled)
	}

	code, err := totpCode(secret, w.now(), w.digits)
	return code, opErr("current_code", err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
