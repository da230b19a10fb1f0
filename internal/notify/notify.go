package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/classcanvas/internal/config"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is the payload emitted after a canvas write.
type Event struct {
	Path    string `json:"path"`
	Command string `json:"command"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	// Time is when the canvas was written, in RFC 3339.
	Time string `json:"time"`
}

// Notifier emits events to one socket.io namespace.
type Notifier struct {
	cfg config.Notify
}

// New returns a Notifier for cfg. A Notifier without a URL does nothing.
func New(cfg config.Notify) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultNotifyTimeout
	}
	if cfg.Event == "" {
		cfg.Event = config.DefaultNotifyEvent
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	return &Notifier{cfg: cfg}
}

// Enabled reports whether a URL is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.cfg.Enabled()
}

// Notify connects, emits ev and disconnects. It gives up after the
// configured timeout.
func (n *Notifier) Notify(ctx context.Context, ev Event) error {
	if !n.Enabled() {
		return nil
	}
	logger := ctxlog.FromContext(ctx).With("url", n.cfg.URL, "namespace", n.cfg.Namespace, "event", n.cfg.Event)
	if ev.Time == "" {
		ev.Time = time.Now().UTC().Format(time.RFC3339)
	}

	parsed, err := url.Parse(n.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse notify URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("notify URL must be absolute: %s", n.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if parsed.Path != "" && parsed.Path != "/" {
		opts.SetPath(parsed.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	opts.SetReconnection(false)

	manager := socket.NewManager(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), opts)
	io := manager.Socket(n.cfg.Namespace, opts)
	defer io.Disconnect()

	var connected atomic.Bool
	done := make(chan error, 1)

	io.Once(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected to notification server.", "sid", io.Id())
		io.Emit(n.cfg.Event, ev)
		select {
		case done <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection refused")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- err:
		default:
		}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if connected.Load() {
			return fmt.Errorf("timed out after connecting to %s", n.cfg.URL)
		}
		return fmt.Errorf("timed out connecting to %s", n.cfg.URL)
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", n.cfg.URL, err)
		}
		logger.Info("Sent canvas update notification.", "path", ev.Path, "command", ev.Command)
		return nil
	}
}
