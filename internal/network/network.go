// Package network connects to the game server and turns its frames into bus messages.
package network

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"golang.org/x/sync/errgroup"
)

const outboundQueueSize = 32

var (
	ErrDial  = errors.New("failed to connect to server")
	ErrRead  = errors.New("failed to read from server")
	ErrWrite = errors.New("failed to write to server")
)

// Recorder receives a copy of every raw frame read from the server.
type Recorder interface {
	Record(frame []byte)
}

// Client is a websocket connection to the game server. Incoming frames are decoded and handed
// to the publisher; nothing here touches the ui directly.
type Client struct {
	serverURL string
	dialer    *websocket.Dialer
	publisher bus.Publisher
	recorder  Recorder
	outbound  chan Envelope
	activeMu  *sync.Mutex
	active    bool
}

func NewClient(serverURL string, dialTimeout time.Duration, publisher bus.Publisher) *Client {
	return &Client{
		serverURL: serverURL,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: dialTimeout,
		},
		publisher: publisher,
		outbound:  make(chan Envelope, outboundQueueSize),
		activeMu:  &sync.Mutex{},
	}
}

// SetRecorder enables recording of inbound frames. It must be called before Connect.
func (c *Client) SetRecorder(recorder Recorder) {
	c.recorder = recorder
}

// IsSupported reports whether the configured server url is a websocket url.
func (c *Client) IsSupported() bool {
	parsed, err := url.Parse(c.serverURL)
	if err != nil {
		return false
	}

	return parsed.Host != "" && (parsed.Scheme == "ws" || parsed.Scheme == "wss")
}

// Connect starts a session in the background. Calling it while a session is already
// running does nothing.
func (c *Client) Connect(ctx context.Context) {
	c.activeMu.Lock()
	defer c.activeMu.Unlock()

	if c.active {
		slog.Debug("Connect called with session already active")

		return
	}

	c.active = true
	c.drainOutbound()

	go c.run(ctx)
}

// SendMessage queues a command for the current session. Commands sent while no session is
// active, or while the queue is full, are dropped.
func (c *Client) SendMessage(command string, payload any) {
	envelope, err := NewEnvelope(command, payload)
	if err != nil {
		slog.Error("Failed to encode command", slog.String("command", command), slog.String("error", err.Error()))

		return
	}

	c.activeMu.Lock()
	active := c.active
	c.activeMu.Unlock()

	if !active {
		slog.Warn("Dropping command, not connected", slog.String("command", command))

		return
	}

	select {
	case c.outbound <- envelope:
	default:
		slog.Warn("Dropping command, send queue full", slog.String("command", command))
	}
}

func (c *Client) run(ctx context.Context) {
	errSession := c.session(ctx)

	c.activeMu.Lock()
	c.active = false
	c.activeMu.Unlock()

	// Nobody is listening anymore once the app is shutting down.
	if ctx.Err() != nil {
		return
	}

	c.publisher.Publish(bus.Disconnected{Err: errSession})
}

func (c *Client) session(ctx context.Context) error {
	slog.Info("Connecting to server", slog.String("url", c.serverURL))

	conn, resp, errDial := c.dialer.DialContext(ctx, c.serverURL, nil)
	if errDial != nil {
		return errors.Join(errDial, ErrDial)
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("Failed to close connection", slog.String("error", err.Error()))
		}
	}()

	c.publisher.Publish(bus.Connected{})

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-groupCtx.Done()

		// Unblocks the reader.
		return conn.Close()
	})
	group.Go(func() error {
		return c.readPump(conn)
	})
	group.Go(func() error {
		return c.writePump(groupCtx, conn)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errSessionClosed) {
		return err
	}

	return nil
}

var errSessionClosed = errors.New("session closed")

func (c *Client) readPump(conn *websocket.Conn) error {
	for {
		_, data, errRead := conn.ReadMessage()
		if errRead != nil {
			if websocket.IsCloseError(errRead, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return errSessionClosed
			}

			return errors.Join(errRead, ErrRead)
		}

		if c.recorder != nil {
			c.recorder.Record(data)
		}

		msg, errDecode := DecodeMessage(data)
		if errDecode != nil {
			slog.Warn("Ignoring server message", slog.String("error", errDecode.Error()))

			continue
		}

		c.publisher.Publish(msg)
	}
}

func (c *Client) writePump(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))

			return errSessionClosed
		case envelope := <-c.outbound:
			if err := conn.WriteJSON(envelope); err != nil {
				return errors.Join(err, ErrWrite)
			}
		}
	}
}

// drainOutbound discards anything queued for a previous session.
func (c *Client) drainOutbound() {
	for {
		select {
		case <-c.outbound:
		default:
			return
		}
	}
}
