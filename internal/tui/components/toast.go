package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/bednights/internal/tui/themes"
)

// ToastLevel selects how a toast is styled.
type ToastLevel int

// Toast levels.
const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Toast is one transient notification.
type Toast struct {
	Text  string
	ID    int
	Level ToastLevel
}

// ToastExpiredMsg removes a toast.
type ToastExpiredMsg struct {
	ID int
}

// Toasts is the stack of visible notifications, newest last.
type Toasts struct {
	items []Toast
	next  int
	ttl   time.Duration
	limit int
}

// NewToasts creates a stack whose toasts live for ttl. At most limit toasts
// are kept; older ones drop off.
func NewToasts(ttl time.Duration, limit int) Toasts {
	return Toasts{ttl: ttl, limit: max(limit, 1)}
}

// Push adds a toast and returns the command that expires it.
func (t *Toasts) Push(level ToastLevel, text string) tea.Cmd {
	t.next++
	id := t.next
	t.items = append(t.items, Toast{ID: id, Level: level, Text: text})
	if len(t.items) > t.limit {
		t.items = t.items[len(t.items)-t.limit:]
	}
	return tea.Tick(t.ttl, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Expire removes the toast with id.
func (t *Toasts) Expire(id int) {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts.
func (t Toasts) Items() []Toast {
	return t.items
}

// View renders the toasts one per line.
func (t Toasts) View(theme themes.Theme) string {
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		switch item.Level {
		case ToastSuccess:
			lines = append(lines, theme.StatusSuccess.Render("✓ "+item.Text))
		case ToastWarning:
			lines = append(lines, theme.StatusWarning.Render("⚠ "+item.Text))
		case ToastError:
			lines = append(lines, theme.StatusError.Render("✗ "+item.Text))
		default:
			lines = append(lines, theme.StatusInfo.Render("ℹ "+item.Text))
		}
	}
	return strings.Join(lines, "\n")
}
