package bus_test

import (
	"testing"

	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/stretchr/testify/require"
)

func TestPublishOrder(t *testing.T) {
	events := bus.NewBus()

	var got []bus.CellUpdate
	bus.On(events, func(update bus.CellUpdate) {
		got = append(got, update)
	})

	events.Publish(bus.CellUpdate{Row: 0, Col: 1, Type: "a"})
	events.Publish(bus.CellUpdate{Row: 2, Col: 3, Type: "b"})
	events.Publish(bus.Connected{})

	require.Equal(t, []bus.CellUpdate{{Row: 0, Col: 1, Type: "a"}, {Row: 2, Col: 3, Type: "b"}}, got)
}

func TestSubscriberOrder(t *testing.T) {
	events := bus.NewBus()

	var order []string
	events.Subscribe(bus.TopicConnected, func(_ bus.Message) { order = append(order, "first") })
	events.Subscribe(bus.TopicConnected, func(_ bus.Message) { order = append(order, "second") })

	events.Publish(bus.Connected{})
	require.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	events := bus.NewBus()

	calls := 0
	unsubscribe := bus.On(events, func(_ bus.Disconnected) { calls++ })

	events.Publish(bus.Disconnected{})
	unsubscribe()
	events.Publish(bus.Disconnected{})

	require.Equal(t, 1, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	events := bus.NewBus()

	require.NotPanics(t, func() {
		events.Publish(bus.ScoreSheetCell{Row: 1, Index: 2, Value: 3})
		events.Publish(nil)
	})
}

func TestPublishFromHandler(t *testing.T) {
	events := bus.NewBus()

	connected := 0
	bus.On(events, func(_ bus.Connected) { connected++ })
	bus.On(events, func(_ bus.CellUpdate) {
		events.Publish(bus.Connected{})
	})

	events.Publish(bus.CellUpdate{})
	require.Equal(t, 1, connected)
}

func TestOnPointerType(t *testing.T) {
	events := bus.NewBus()

	var got []*bus.CellUpdate
	var values int

	require.NotPanics(t, func() {
		bus.On(events, func(update *bus.CellUpdate) { got = append(got, update) })
	})
	bus.On(events, func(_ bus.CellUpdate) { values++ })

	events.Publish(&bus.CellUpdate{Row: 1, Col: 1, Type: "x-mark"})
	events.Publish(bus.CellUpdate{Row: 2, Col: 2, Type: "o-mark"})

	require.Equal(t, []*bus.CellUpdate{{Row: 1, Col: 1, Type: "x-mark"}}, got)
	require.Equal(t, 1, values)
}

func TestFatalError(t *testing.T) {
	require.True(t, bus.FatalError{Code: bus.ErrorInvalidUsername}.IsLoginError())
	require.True(t, bus.FatalError{Code: bus.ErrorUsernameAlreadyInUse}.IsLoginError())
	require.False(t, bus.FatalError{Code: bus.ErrorNotUsingLatestVersion}.IsLoginError())
	require.Equal(t, "Username already in use", bus.FatalError{Code: bus.ErrorUsernameAlreadyInUse}.Description())
	require.Equal(t, "Server error: Boom", bus.FatalError{Code: "Boom"}.Description())
}
