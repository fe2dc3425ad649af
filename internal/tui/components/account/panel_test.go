package account

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/billie-coop/nimbus/internal/worker"
)

func TestPanel_View(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		account worker.Account
		notes   int
		want    []string
	}{
		{
			name:    "fresh account",
			account: worker.Account{Email: "me@localhost", CreatedAt: now},
			notes:   1,
			want:    []string{"me@localhost", "1 note", "two-factor off", "no password set"},
		},
		{
			name: "secured account",
			account: worker.Account{
				Email:             "me@localhost",
				TwoFactorEnabled:  true,
				HasPassword:       true,
				CreatedAt:         now,
				PasswordChangedAt: now.Add(-48 * time.Hour),
			},
			notes: 1200,
			want:  []string{"1,200 notes", "two-factor on", "password changed 2 days ago"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.now = func() time.Time { return now }
			p.SetSize(40, 30)
			p.SetAccount(tt.account)
			p.SetNoteCount(tt.notes)

			view := p.View()
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("View() missing %q:\n%s", want, view)
				}
			}
		})
	}
}

func TestPanel_States(t *testing.T) {
	p := New()
	p.SetSize(40, 30)

	if !strings.Contains(p.View(), "Loading account") {
		t.Error("unloaded panel does not say it is loading")
	}

	p.SetError(errors.New("database locked"))
	if !strings.Contains(p.View(), "database locked") {
		t.Error("error not shown")
	}

	p.SetAccount(worker.Account{Email: "me@localhost"})
	if strings.Contains(p.View(), "database locked") {
		t.Error("error kept after a successful load")
	}
	if _, ok := p.Account(); !ok {
		t.Error("Account() not loaded")
	}
}
