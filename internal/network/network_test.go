package network_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/network"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu       sync.Mutex
	messages []bus.Message
}

func (c *collector) Publish(msg bus.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
}

func (c *collector) received() []bus.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]bus.Message(nil), c.messages...)
}

func (c *collector) has(msg bus.Message) func() bool {
	return func() bool {
		for _, got := range c.received() {
			if got == msg {
				return true
			}
		}

		return false
	}
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []string
}

func (r *frameRecorder) Record(frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames = append(r.frames, string(frame))
}

func (r *frameRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.frames)
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"ws://127.0.0.1:8080/ws":   true,
		"wss://game.example.com/":  true,
		"http://127.0.0.1:8080/ws": false,
		"127.0.0.1:8080":           false,
		"":                         false,
		"ws://":                    false,
	}

	for serverURL, expected := range cases {
		client := network.NewClient(serverURL, time.Second, &collector{})
		require.Equal(t, expected, client.IsSupported(), serverURL)
	}
}

func TestClientSession(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan network.Envelope, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"board","payload":{"row":2,"col":3,"type":"x-mark"}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","payload":"hi"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"score-sheet-cell","payload":{"row":0,"index":2,"value":5}}`))

		var envelope network.Envelope
		if err := conn.ReadJSON(&envelope); err == nil {
			received <- envelope
		}

		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_, _, _ = conn.ReadMessage()
	}))
	defer server.Close()

	publisher := &collector{}
	recorder := &frameRecorder{}
	client := network.NewClient(wsURL(server), time.Second*5, publisher)
	client.SetRecorder(recorder)
	client.Connect(t.Context())

	require.Eventually(t, publisher.has(bus.Connected{}), time.Second*5, time.Millisecond*10)

	client.SendMessage("set-username", "alice")

	select {
	case envelope := <-received:
		require.Equal(t, "set-username", envelope.Type)
		require.JSONEq(t, `"alice"`, string(envelope.Payload))
	case <-time.After(time.Second * 5):
		t.Fatal("server did not receive command")
	}

	require.Eventually(t, publisher.has(bus.Disconnected{}), time.Second*5, time.Millisecond*10)

	messages := publisher.received()
	require.Equal(t, []bus.Message{
		bus.Connected{},
		bus.CellUpdate{Row: 2, Col: 3, Type: "x-mark"},
		bus.ScoreSheetCell{Row: 0, Index: 2, Value: 5},
		bus.Disconnected{},
	}, messages)

	// Unknown frames are recorded too, the decoder decides what to skip on replay.
	require.Equal(t, 3, recorder.count())
}

func TestClientDialFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := wsURL(server)
	server.Close()

	publisher := &collector{}
	client := network.NewClient(serverURL, time.Second, publisher)
	client.Connect(t.Context())

	require.Eventually(t, func() bool {
		return len(publisher.received()) == 1
	}, time.Second*5, time.Millisecond*10)

	disconnected, ok := publisher.received()[0].(bus.Disconnected)
	require.True(t, ok)
	require.ErrorIs(t, disconnected.Err, network.ErrDial)
}

func TestClientSendWhileDisconnected(t *testing.T) {
	publisher := &collector{}
	client := network.NewClient("ws://127.0.0.1:1/ws", time.Second, publisher)

	require.NotPanics(t, func() {
		client.SendMessage("set-username", "alice")
	})
	require.Empty(t, publisher.received())
}

func TestReplay(t *testing.T) {
	replayPath := filepath.Join(t.TempDir(), "session.jsonl")
	content := strings.Join([]string{
		`# recorded session`,
		`{"type":"board","payload":{"row":0,"col":1,"type":"o-mark"}}`,
		``,
		`not json`,
		`{"type":"score-sheet-cell","payload":{"row":3,"index":1,"value":1}}`,
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(replayPath, []byte(content), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	publisher := &collector{}
	replay := network.NewReplay(replayPath, publisher)
	require.True(t, replay.IsSupported())

	replay.Connect(ctx)

	require.Eventually(t, publisher.has(bus.ScoreSheetCell{Row: 3, Index: 1, Value: 1}), time.Second*5, time.Millisecond*10)
	require.Equal(t, []bus.Message{
		bus.Connected{},
		bus.CellUpdate{Row: 0, Col: 1, Type: "o-mark"},
		bus.ScoreSheetCell{Row: 3, Index: 1, Value: 1},
	}, publisher.received())
}

func TestReplayMissingFile(t *testing.T) {
	publisher := &collector{}
	replay := network.NewReplay(filepath.Join(t.TempDir(), "missing.jsonl"), publisher)
	replay.Connect(t.Context())

	require.Eventually(t, func() bool {
		return len(publisher.received()) == 1
	}, time.Second*5, time.Millisecond*10)

	disconnected, ok := publisher.received()[0].(bus.Disconnected)
	require.True(t, ok)
	require.ErrorIs(t, disconnected.Err, network.ErrOpen)
}
