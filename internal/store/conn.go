package store

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// defaultDB is the logical database every operation targets.
const defaultDB = 0

// Conn owns a single session to a Redis-compatible store.
//
// A Conn is not safe for concurrent use. Callers sharing one must serialize
// access themselves.
type Conn struct {
	addr          string
	authenticated bool

	client *redis.Client
	conn   *redis.Conn

	closeOnce sync.Once
	closeErr  error
}

// Open dials host:port, authenticates with credential when it is non-empty and
// verifies the session with PING. On failure the partially built session is
// released and a *ConnectionError is returned.
func Open(ctx context.Context, host, port, credential string) (*Conn, error) {
	addr := net.JoinHostPort(host, port)
	if host == "" {
		return nil, &ConnectionError{Addr: addr, Err: ErrEmptyHost}
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, &ConnectionError{Addr: addr, Err: fmt.Errorf("%w: %q", ErrInvalidPort, port)}
	}

	// One connection, no client-side retries. The credential is sent with an
	// explicit AUTH so a server without a password rejects it.
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		DB:              defaultDB,
		PoolSize:        1,
		MaxRetries:      -1,
		DisableIdentity: true,
	})

	c := &Conn{
		addr:          addr,
		authenticated: credential != "",
		client:        client,
		conn:          client.Conn(),
	}

	if credential != "" {
		if err := c.conn.Auth(ctx, credential).Err(); err != nil {
			_ = c.Close()
			return nil, &ConnectionError{Addr: addr, Err: fmt.Errorf("auth: %w", err)}
		}
	}
	if err := c.conn.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, &ConnectionError{Addr: addr, Err: err}
	}
	return c, nil
}

// With opens a Conn, hands it to fn and closes it on every exit path,
// including a panic inside fn.
func With(ctx context.Context, host, port, credential string, fn func(*Conn) error) (err error) {
	c, err := Open(ctx, host, port, credential)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// Push selects database 0 and prepends value to list. The server creates the
// list if it does not exist.
func (c *Conn) Push(ctx context.Context, list, value string) error {
	if list == "" {
		return &OperationError{Op: "push", Key: list, Err: ErrEmptyKey}
	}
	_, err := c.conn.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Select(ctx, defaultDB)
		pipe.LPush(ctx, list, value)
		return nil
	})
	if err != nil {
		return &OperationError{Op: "push", Key: list, Err: err}
	}
	return nil
}

// PopRandom removes and returns an arbitrary member of set. found is false
// when the set is empty or missing; that is not an error.
func (c *Conn) PopRandom(ctx context.Context, set string) (member string, found bool, err error) {
	if set == "" {
		return "", false, &OperationError{Op: "pop", Key: set, Err: ErrEmptyKey}
	}
	member, err = c.conn.SPop(ctx, set).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, &OperationError{Op: "pop", Key: set, Err: err}
	}
	return member, true, nil
}

// Close releases the session. Calling it more than once is harmless.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		connErr := c.conn.Close()
		clientErr := c.client.Close()
		if connErr != nil {
			c.closeErr = connErr
		} else {
			c.closeErr = clientErr
		}
	})
	return c.closeErr
}

func (c *Conn) Addr() string { return c.addr }

func (c *Conn) DB() int { return defaultDB }

func (c *Conn) Authenticated() bool { return c.authenticated }
