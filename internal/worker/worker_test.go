package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func openTestWorker(t *testing.T) (*Worker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	w, err := Open(filepath.Join(t.TempDir(), "nimbus.db"), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, clock
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "nimbus.db")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	if _, err := w.CreateNote(context.Background(), "keep", ""); err != nil {
		t.Fatal(err)
	}
	w.Close()

	w, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer w.Close()

	notes, err := w.ListNotes(context.Background())
	if err != nil || len(notes) != 1 {
		t.Errorf("ListNotes() = %v, %v; want the note from the first session", notes, err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	w, _ := openTestWorker(t)

	account, err := w.FetchAccount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if account.HasPassword {
		t.Fatal("fresh account has a password")
	}

	if err := w.ChangePassword(ctx, "", "first"); err != nil {
		t.Fatalf("initial ChangePassword() error = %v", err)
	}

	tests := []struct {
		name    string
		current string
		next    string
		wantErr error
	}{
		{"wrong current", "nope", "second", ErrInvalidPassword},
		{"blank new", "first", "  ", ErrEmptyPassword},
		{"valid", "first", "second", nil},
		{"old password no longer valid", "first", "third", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.ChangePassword(ctx, tt.current, tt.next)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ChangePassword() error = %v, want %v", err, tt.wantErr)
			}
			var opErr *OpError
			if err != nil && (!errors.As(err, &opErr) || opErr.Op != "change_password") {
				t.Errorf("error %v is not an OpError for change_password", err)
			}
		})
	}

	account, _ = w.FetchAccount(ctx)
	if !account.HasPassword || account.PasswordChangedAt.IsZero() {
		t.Errorf("account = %+v after password change", account)
	}
}

func TestTwoFactorLifecycle(t *testing.T) {
	ctx := context.Background()
	w, clock := openTestWorker(t)

	if _, err := w.EnableTwoFactor(ctx, "123456"); !errors.Is(err, ErrNoPendingKey) {
		t.Fatalf("EnableTwoFactor() before key error = %v", err)
	}
	if err := w.DisableTwoFactor(ctx, "123456"); !errors.Is(err, ErrTwoFactorDisabled) {
		t.Fatalf("DisableTwoFactor() while off error = %v", err)
	}

	key, err := w.GenerateTwoFactorKey(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := w.EnableTwoFactor(ctx, "000000x"); !errors.Is(err, ErrInvalidTwoFactorCode) {
		t.Fatalf("EnableTwoFactor() with bad code error = %v", err)
	}

	code, err := totpCode(key.Secret, clock.t, 6)
	if err != nil {
		t.Fatal(err)
	}
	if current, _ := w.CurrentCode(ctx); current != code {
		t.Errorf("CurrentCode() = %q, want %q", current, code)
	}

	recoveryKey, err := w.EnableTwoFactor(ctx, code)
	if err != nil {
		t.Fatalf("EnableTwoFactor() error = %v", err)
	}
	if recoveryKey == "" {
		t.Fatal("no recovery key returned")
	}

	account, _ := w.FetchAccount(ctx)
	if !account.TwoFactorEnabled {
		t.Fatal("TwoFactorEnabled = false after enable")
	}
	if _, err := w.GenerateTwoFactorKey(ctx); !errors.Is(err, ErrTwoFactorEnabled) {
		t.Errorf("GenerateTwoFactorKey() while on error = %v", err)
	}

	clock.t = clock.t.Add(10 * time.Minute)
	if err := w.DisableTwoFactor(ctx, code); !errors.Is(err, ErrInvalidTwoFactorCode) {
		t.Fatalf("DisableTwoFactor() with expired code error = %v", err)
	}

	if err := w.DisableTwoFactor(ctx, recoveryKey); err != nil {
		t.Fatalf("DisableTwoFactor() with recovery key error = %v", err)
	}
	account, _ = w.FetchAccount(ctx)
	if account.TwoFactorEnabled {
		t.Error("TwoFactorEnabled = true after disable")
	}
}

func TestDisableTwoFactor_WithCode(t *testing.T) {
	ctx := context.Background()
	w, clock := openTestWorker(t)

	key, _ := w.GenerateTwoFactorKey(ctx)
	secret := key.Secret
	code, _ := totpCode(secret, clock.t, 6)
	if _, err := w.EnableTwoFactor(ctx, code); err != nil {
		t.Fatal(err)
	}

	clock.t = clock.t.Add(totpStep)
	next, _ := totpCode(secret, clock.t, 6)
	if err := w.DisableTwoFactor(ctx, next); err != nil {
		t.Errorf("DisableTwoFactor() error = %v", err)
	}
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	w, clock := openTestWorker(t)

	first, err := w.CreateNote(ctx, "  ", "# hello")
	if err != nil {
		t.Fatal(err)
	}
	if first.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", first.Title)
	}

	clock.t = clock.t.Add(time.Minute)
	second, _ := w.CreateNote(ctx, "Groceries", "- milk")

	notes, err := w.ListNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 || notes[0].ID != second.ID {
		t.Fatalf("ListNotes() = %+v, want newest first", notes)
	}

	clock.t = clock.t.Add(time.Minute)
	if err := w.EditNoteTitle(ctx, first.ID, " Renamed "); err != nil {
		t.Fatal(err)
	}
	if err := w.EditNoteContent(ctx, first.ID, "new body"); err != nil {
		t.Fatal(err)
	}

	got, err := w.GetNote(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Renamed" || got.Content != "new body" || !got.UpdatedAt.Equal(clock.t) {
		t.Errorf("GetNote() = %+v", got)
	}

	notes, _ = w.ListNotes(ctx)
	if notes[0].ID != first.ID {
		t.Error("edited note not moved to the top")
	}

	if err := w.DeleteNote(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	for name, err := range map[string]error{
		"get":    func() error { _, err := w.GetNote(ctx, first.ID); return err }(),
		"title":  w.EditNoteTitle(ctx, first.ID, "x"),
		"delete": w.DeleteNote(ctx, first.ID),
	} {
		if !errors.Is(err, ErrNoteNotFound) {
			t.Errorf("%s after delete error = %v, want ErrNoteNotFound", name, err)
		}
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	w, _ := openTestWorker(t)

	if err := w.SaveSetting(ctx, "theme", "light"); err != nil {
		t.Fatal(err)
	}
	if err := w.SaveSetting(ctx, "theme", "nimbus"); err != nil {
		t.Fatal(err)
	}

	settings, err := w.FetchSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 1 || settings["theme"] != "nimbus" {
		t.Errorf("FetchSettings() = %v", settings)
	}
}

func TestOpError(t *testing.T) {
	err := opErr("delete_note", ErrNoteNotFound)
	if err.Error() != "delete_note: note not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if opErr("noop", nil) != nil {
		t.Error("opErr(nil) != nil")
	}
}

func TestNormalizeRecoveryKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCD-EFGH-IJKL-MNOP", "ABCDEFGHIJKLMNOP"},
		{" abcd efgh-ijkl mnop ", "ABCDEFGHIJKLMNOP"},
		{"abcdefghijklmnop", "ABCDEFGHIJKLMNOP"},
	}
	for _, tt := range tests {
		if got := normalizeRecoveryKey(tt.in); got != tt.want {
			t.Errorf("normalizeRecoveryKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnableTwoFactor_EightDigits(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1111111109, 0)}
	w, err := Open(filepath.Join(t.TempDir(), "nimbus.db"), WithClock(clock.Now), WithCodeLength(8))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	key, err := w.GenerateTwoFactorKey(ctx)
	if err != nil {
		t.Fatal(err)
	}

	code, err := w.CurrentCode(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 8 {
		t.Fatalf("CurrentCode() = %q, want 8 digits", code)
	}
	if want, _ := totpCode(key.Secret, clock.t, 8); code != want {
		t.Errorf("CurrentCode() = %q, want %q", code, want)
	}

	if _, err := w.EnableTwoFactor(ctx, code[:6]); !errors.Is(err, ErrInvalidTwoFactorCode) {
		t.Errorf("EnableTwoFactor() with 6 of 8 digits error = %v", err)
	}
	if _, err := w.EnableTwoFactor(ctx, code); err != nil {
		t.Errorf("EnableTwoFactor() error = %v", err)
	}
}

func TestWithCodeLength_IgnoresOutOfRange(t *testing.T) {
	for _, digits := range []int{0, 5, 9, 10} {
		w := &Worker{digits: DefaultCodeLength}
		WithCodeLength(digits)(w)
		if w.digits != DefaultCodeLength {
			t.Errorf("WithCodeLength(%d) set digits to %d", digits, w.digits)
		}
	}
}
