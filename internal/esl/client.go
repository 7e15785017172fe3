// Package esl wraps an inbound FreeSWITCH event socket connection: dial,
// authenticate, then issue blocking "api" commands one at a time.
package esl

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/fstelegraf/internal/errors"
	"codeberg.org/mutker/fstelegraf/internal/logger"
	"github.com/percipia/eslgo"
	"github.com/percipia/eslgo/command"
)

const errPrefix = "-ERR"

// Client is an authenticated event socket connection.
type Client struct {
	conn        *eslgo.Conn
	timeout     time.Duration
	maxResponse int
	logger      logger.Logger

	mu     sync.Mutex
	closed atomic.Bool
}

// Dial connects to the switch and authenticates. The connection lives until
// Close, a disconnect notice from the switch, or the end of ctx.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errFactory.Wrap(errors.ErrConnect, err)
	}

	c := &Client{
		timeout:     cfg.timeout(),
		maxResponse: cfg.maxResponseSize(),
		logger:      logger.Default(),
	}

	opts := eslgo.DefaultInboundOptions
	opts.Context = ctx
	opts.Logger = libraryLogger{}
	opts.ExitTimeout = c.timeout
	opts.Password = cfg.Password
	opts.AuthTimeout = c.timeout
	opts.OnDisconnect = c.disconnected

	conn, err := opts.Dial(cfg.Address)
	if err != nil {
		var opErr *net.OpError
		if stderrors.As(err, &opErr) {
			return nil, errFactory.Wrap(errors.ErrConnect, err)
		}
		return nil, errFactory.Wrap(errors.ErrAuthFailed, err)
	}
	c.conn = conn

	c.logger.Debug().Str("address", cfg.Address).Msg("Event socket authenticated")

	return c, nil
}

// API runs a command and returns its raw response body. Transport problems
// return service_unavailable; a "-ERR" reply returns command_rejected.
func (c *Client) API(ctx context.Context, cmd string) (string, error) {
	errFactory := errors.New()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return "", errFactory.WithMessage(errors.ErrUnavailable, "connection closed")
	}
	if err := ctx.Err(); err != nil {
		return "", errFactory.Wrap(errors.ErrUnavailable, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	name, args, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	resp, err := c.conn.SendCommand(callCtx, command.API{Command: name, Arguments: args})
	if err != nil {
		c.abort(err)
		return "", errFactory.Wrap(errors.ErrUnavailable, err)
	}

	if len(resp.Body) > c.maxResponse {
		return "", errFactory.WithData(errors.ErrProtocol, map[string]int{
			"length": len(resp.Body),
			"limit":  c.maxResponse,
		})
	}

	body := string(resp.Body)
	if reply := resp.Headers.Get("Reply-Text"); body == "" && reply != "" {
		body = reply
	}
	if strings.HasPrefix(body, errPrefix) {
		return "", errFactory.WithData(errors.ErrCommandRejected, strings.TrimSpace(body))
	}

	return body, nil
}

// Close asks the switch to end the session and closes the socket.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Swap(true) {
		return nil
	}
	c.conn.ExitAndClose()

	return nil
}

// abort drops a connection whose replies can no longer be matched to
// commands, so a late reply is never taken as the answer to a later one.
// Must be called with c.mu held.
func (c *Client) abort(cause error) {
	c.logger.Debug().Err(cause).Msg("Event socket connection lost")
	c.closed.Store(true)
	c.conn.Close()
}

func (c *Client) disconnected() {
	if !c.closed.Swap(true) {
		c.logger.Debug().Msg("Event socket disconnected by switch")
	}
}
