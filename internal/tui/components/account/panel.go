package account

import (
	"strings"
	"time"

	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/billie-coop/nimbus/internal/worker"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

// Panel shows the account and its security settings
type Panel struct {
	width, height int

	account   worker.Account
	loaded    bool
	err       error
	noteCount int

	now func() time.Time
}

// New creates an empty panel
func New() *Panel {
	return &Panel{now: time.Now}
}

// SetAccount replaces the account shown
func (p *Panel) SetAccount(account worker.Account) {
	p.account = account
	p.loaded = true
	p.err = nil
}

// SetError shows a load failure in place of the account
func (p *Panel) SetError(err error) {
	p.err = err
}

// SetNoteCount updates the note counter
func (p *Panel) SetNoteCount(n int) {
	p.noteCount = n
}

// Account returns the last loaded account
func (p *Panel) Account() (worker.Account, bool) {
	return p.account, p.loaded
}

// SetSize sets the panel dimensions
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the panel
func (p *Panel) View() string {
	if p.width <= 0 {
		return ""
	}

	s := styles.CurrentTheme().S()
	var b strings.Builder

	b.WriteString(s.Title.Render("☁ nimbus"))
	b.WriteString("\n\n")

	switch {
	case p.err != nil:
		b.WriteString(s.Error.Width(p.width).Render(p.err.Error()))
		return b.String()
	case !p.loaded:
		b.WriteString(s.Subtle.Render("Loading account..."))
		return b.String()
	}

	b.WriteString(s.Bold.MaxWidth(p.width).Render(p.account.Email))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("member since " + p.account.CreatedAt.Format("Jan 2006")))
	b.WriteString("\n\n")

	b.WriteString(s.Muted.Render(humanize.Comma(int64(p.noteCount)) + " " + plural(p.noteCount, "note", "notes")))
	b.WriteString("\n\n")

	b.WriteString(s.Bold.Render("Security"))
	b.WriteString("\n")
	b.WriteString(p.twoFactorLine(s))
	b.WriteString("\n")
	b.WriteString(p.passwordLine(s))
	b.WriteString("\n\n")

	hints := []string{
		"n  new note",
		"r  rename",
		"e  edit",
		"d  delete",
		"p  change password",
		"2  two-factor",
		"t  theme",
		"q  quit",
	}
	b.WriteString(s.Subtle.Render(strings.Join(hints, "\n")))

	return lipgloss.NewStyle().MaxWidth(p.width).Render(b.String())
}

func (p *Panel) twoFactorLine(s *styles.Styles) string {
	if p.account.TwoFactorEnabled {
		return s.Success.Render("● two-factor on")
	}
	return s.Warning.Render("○ two-factor off")
}

func (p *Panel) passwordLine(s *styles.Styles) string {
	switch {
	case !p.account.HasPassword:
		return s.Warning.Render("○ no password set")
	case p.account.PasswordChangedAt.IsZero():
		return s.Success.Render("● password set")
	default:
		when := humanize.RelTime(p.account.PasswordChangedAt, p.now(), "ago", "from now")
		return s.Success.Render("● password changed " + when)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
