package command

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const ClearMessageTimeout = time.Second * 10

// StartMsg kicks off the page controller once the program is running.
type StartMsg struct{}

func Start() tea.Msg {
	return StartMsg{}
}

type LoginSubmitMsg struct {
	Username string
}

func SubmitLogin(username string) tea.Cmd {
	return func() tea.Msg { return LoginSubmitMsg{Username: username} }
}

// UsernameMsg carries a previously used username to prefill the login form, and the other
// names recently used against the same server.
type UsernameMsg struct {
	Username string
	Recent   []string
}

type ClearStatusMessageMsg struct{}

func ClearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return ClearStatusMessageMsg{}
	})
}

type StatusMsg struct {
	Message string
	Err     bool
}

func SetStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: msg, Err: err}
	}
}
