package pages_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/board-tui/internal/ui/command"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/pages"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestLoginSubmit(t *testing.T) {
	zone.NewGlobal()

	login := pages.NewLogin("")

	cmd := login.Update(enter)
	require.NotNil(t, cmd)

	status, ok := cmd().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, status.Err)

	for _, r := range "  bob " {
		login.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	cmd = login.Update(enter)
	require.NotNil(t, cmd)
	require.Equal(t, command.LoginSubmitMsg{Username: "bob"}, cmd())
}

func TestLoginPrefill(t *testing.T) {
	zone.NewGlobal()

	login := pages.NewLogin("")
	login.Update(command.UsernameMsg{Username: "carol"})
	require.Equal(t, command.LoginSubmitMsg{Username: "carol"}, login.Update(enter)())

	configured := pages.NewLogin("dave")
	configured.Update(command.UsernameMsg{Username: "carol"})
	require.Equal(t, command.LoginSubmitMsg{Username: "dave"}, configured.Update(enter)())
}

func TestLoginRecentHint(t *testing.T) {
	zone.NewGlobal()

	state := model.ViewState{Width: 80, Content: 20}
	login := pages.NewLogin("")
	require.NotContains(t, login.Render(state), "Recent:")

	login.Update(command.UsernameMsg{Recent: []string{"alice", "bob"}})
	require.Contains(t, login.Render(state), "Recent: alice, bob")

	// Recent names alone must not prefill the form.
	status, ok := login.Update(enter)().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, status.Err)
}

func TestLoginTooLong(t *testing.T) {
	zone.NewGlobal()

	login := pages.NewLogin("abcdefghijklmnopqrstuvwxyz0123456789")

	status, ok := login.Update(enter)().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, status.Err)
}
