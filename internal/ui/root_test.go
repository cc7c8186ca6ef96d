package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/config"
	"github.com/leighmacdonald/board-tui/internal/ui/command"
	"github.com/leighmacdonald/board-tui/internal/view"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

type fakeNetwork struct {
	supported bool
	connects  int
	sent      []string
}

func (f *fakeNetwork) IsSupported() bool {
	return f.supported
}

func (f *fakeNetwork) Connect(_ context.Context) {
	f.connects++
}

func (f *fakeNetwork) SendMessage(command string, payload any) {
	username, _ := payload.(string)
	f.sent = append(f.sent, command+":"+username)
}

type fakeHistory struct {
	last     string
	recent   []string
	recorded []string
}

func (f *fakeHistory) RecordLogin(_ context.Context, username string, _ string) error {
	f.recorded = append(f.recorded, username)

	return nil
}

func (f *fakeHistory) LastUsername(_ context.Context, _ string) (string, error) {
	return f.last, nil
}

func (f *fakeHistory) RecentUsernames(_ context.Context, _ string, limit int) ([]string, error) {
	return f.recent[:min(limit, len(f.recent))], nil
}

func newTestModel(t *testing.T, network *fakeNetwork, history LoginHistory) rootModel {
	t.Helper()

	zone.NewGlobal()

	events := bus.NewBus()
	gameBoard := board.New()
	t.Cleanup(gameBoard.Subscribe(events))

	conf := config.Config{ServerURL: "ws://127.0.0.1:8080/ws", CellAspect: 2}

	return newRootModel(context.Background(), conf, events, view.NewController(network, events), gameBoard, history, "test")
}

func update(t *testing.T, m rootModel, msg tea.Msg) (rootModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	updated, ok := next.(rootModel)
	require.True(t, ok)

	return updated, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	return cmd != nil && reflect.ValueOf(cmd).Pointer() == reflect.ValueOf(tea.Quit).Pointer()
}

// runCmd executes a command and any batched children, returning every non batch message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, child := range batch {
			msgs = append(msgs, runCmd(child)...)
		}

		return msgs
	}

	if msg == nil {
		return nil
	}

	return []tea.Msg{msg}
}

func TestRootLifecycle(t *testing.T) {
	network := &fakeNetwork{supported: true}
	history := &fakeHistory{}
	m := newTestModel(t, network, history)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 1000, Height: 60})
	require.Equal(t, board.ComputeLayout(1000), m.viewState.Layout)

	m, _ = update(t, m, command.StartMsg{})
	require.Equal(t, view.PageConnecting, m.viewState.Page)
	require.Equal(t, 1, network.connects)

	m, _ = update(t, m, bus.Connected{})
	require.Equal(t, view.PageLogin, m.viewState.Page)

	m, cmd := update(t, m, command.LoginSubmitMsg{Username: "alice"})
	require.Equal(t, view.PageLobby, m.viewState.Page)
	require.Equal(t, []string{view.CommandSetUsername + ":alice"}, network.sent)

	runCmd(cmd)
	require.Equal(t, []string{"alice"}, history.recorded)

	m, _ = update(t, m, bus.CellUpdate{Row: 2, Col: 3, Type: "x-mark"})
	cell, found := m.board.Cell(2, 3)
	require.True(t, found)
	require.Equal(t, "x-mark", cell.State)
	require.NotEmpty(t, m.View())

	m, _ = update(t, m, bus.Disconnected{Err: errors.New("reset")})
	require.Equal(t, view.PageDisconnected, m.viewState.Page)

	m, _ = update(t, m, runeKey('r'))
	require.Equal(t, view.PageConnecting, m.viewState.Page)
	require.Equal(t, 2, network.connects)
}

func TestRootUnsupported(t *testing.T) {
	network := &fakeNetwork{supported: false}
	m := newTestModel(t, network, nil)

	m, _ = update(t, m, command.StartMsg{})
	require.Equal(t, view.PageUnsupported, m.viewState.Page)
	require.Equal(t, 0, network.connects)

	m, _ = update(t, m, bus.Connected{})
	require.Equal(t, view.PageUnsupported, m.viewState.Page)
}

func TestRootQuitKeys(t *testing.T) {
	network := &fakeNetwork{supported: true}
	m := newTestModel(t, network, nil)

	m, _ = update(t, m, command.StartMsg{})
	m, _ = update(t, m, bus.Connected{})

	// Typing q into the login form must not quit.
	m, cmd := update(t, m, runeKey('q'))
	require.False(t, isQuit(cmd))
	require.Equal(t, view.PageLogin, m.viewState.Page)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, isQuit(cmd))

	m, _ = update(t, m, bus.Disconnected{})
	_, cmd = update(t, m, runeKey('q'))
	require.True(t, isQuit(cmd))
}

func TestRootInitialLayout(t *testing.T) {
	m := newTestModel(t, &fakeNetwork{supported: true}, nil)
	require.Equal(t, board.ComputeLayout(0), m.viewState.Layout)
}

func TestRootFatalError(t *testing.T) {
	network := &fakeNetwork{supported: true}
	m := newTestModel(t, network, nil)

	m, _ = update(t, m, command.StartMsg{})
	m, _ = update(t, m, bus.Connected{})
	m, _ = update(t, m, command.LoginSubmitMsg{Username: "alice"})
	require.Equal(t, view.PageLobby, m.viewState.Page)

	m, cmd := update(t, m, bus.FatalError{Code: bus.ErrorUsernameAlreadyInUse})
	require.Equal(t, view.PageLogin, m.viewState.Page)
	require.Contains(t, runCmd(cmd), command.StatusMsg{Message: "Username already in use", Err: true})
}

func TestRootLoadUsername(t *testing.T) {
	m := newTestModel(t, &fakeNetwork{supported: true}, &fakeHistory{last: "bob"})
	require.Equal(t, command.UsernameMsg{Username: "bob"}, m.loadUsername()())

	names := []string{"bob", "alice", "carol", "dave", "erin", "frank"}
	withRecent := newTestModel(t, &fakeNetwork{supported: true}, &fakeHistory{last: "bob", recent: names})
	require.Equal(t, command.UsernameMsg{Username: "bob", Recent: names[:recentUsernameLimit]},
		withRecent.loadUsername()())

	empty := newTestModel(t, &fakeNetwork{supported: true}, &fakeHistory{})
	require.Nil(t, empty.loadUsername()())
}

func TestRootConfigUpdate(t *testing.T) {
	m := newTestModel(t, &fakeNetwork{supported: true}, nil)

	m, _ = update(t, m, config.Config{CellAspect: 3})
	require.Equal(t, 3, m.viewState.CellAspect)

	m, _ = update(t, m, config.Config{CellAspect: 0})
	require.Equal(t, 1, m.viewState.CellAspect)
}
