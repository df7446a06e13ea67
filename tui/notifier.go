package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/preroll-cli/preroll/style"
)

const notificationLifetime = 2 * time.Second

type clearNotificationMsg struct {
	id int
}

// notifier appends a short-lived status message to the last line of the frame.
type notifier struct {
	message string
	id      int
	pending bool
}

func (n *notifier) notify(message string) {
	n.message = message
	n.id++
	n.pending = true
}

// cmd schedules removal of the newest notification, once.
func (n *notifier) cmd() tea.Cmd {
	if !n.pending {
		return nil
	}
	n.pending = false

	id := n.id
	return tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}

func (n *notifier) update(msg clearNotificationMsg) {
	// a newer message restarted the timer
	if msg.id == n.id {
		n.message = ""
	}
}

func (n *notifier) view(content string) string {
	if n.message == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.message)
	return strings.Join(lines, "\n")
}
