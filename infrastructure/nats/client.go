package nats

import (
	"context"
	"fmt"
	"time"

	"attendance-tasks/pkg/logger"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client wraps NATS connection with JetStream context
type Client struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

type ClientConfig struct {
	URL    string        // nats://localhost:4222
	MaxAge time.Duration // event retention, default 7 days
}

// NewClient connects and makes sure the task event stream exists.
func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("attendance-tasks-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		conn: nc,
		js:   js,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.setupStream(ctx, cfg.MaxAge); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", StreamName)
	return client, nil
}

func (c *Client) setupStream(ctx context.Context, maxAge time.Duration) error {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectTaskEvents},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      maxAge,
		Duplicates:  2 * time.Minute,
		Replicas:    1,
		Description: "Task lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update task event stream: %w", err)
	}
	c.stream = stream
	logger.Info("JetStream stream ready", "name", StreamName)
	return nil
}

// Status reports the event stream counters.
func (c *Client) Status(ctx context.Context) (*StreamInfo, error) {
	info, err := c.stream.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream info: %w", err)
	}
	return &StreamInfo{
		Name:     info.Config.Name,
		Messages: info.State.Msgs,
		Bytes:    info.State.Bytes,
		FirstSeq: info.State.FirstSeq,
		LastSeq:  info.State.LastSeq,
	}, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// Lifecycle
// ═══════════════════════════════════════════════════════════════════════════════

func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
		logger.Info("NATS connection closed")
	}
	return nil
}

func (c *Client) Ping() error {
	if !c.IsConnected() {
		return fmt.Errorf("not connected to %s", c.conn.ConnectedUrl())
	}
	return c.conn.FlushTimeout(5 * time.Second)
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}
