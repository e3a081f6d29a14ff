package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

const writeTimeout = 5 * time.Second

// Handler receives decoded messages from ReadLoop.
type Handler func(Message)

// Conn frames messages over a stream connection. Send is safe for
// concurrent use; reads belong to one goroutine.
type Conn struct {
	conn    net.Conn
	scanner *bufio.Scanner
	mu      sync.Mutex
	closed  bool
}

func NewConn(c net.Conn) *Conn {
	s := bufio.NewScanner(c)
	s.Buffer(make([]byte, 0, 512), MaxLineLength)
	return &Conn{conn: c, scanner: s}
}

// Dial connects to a socket host.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewConn(c), nil
}

// Send writes one message.
func (c *Conn) Send(msg Message) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return net.ErrClosed
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err = c.conn.Write(data)
	return err
}

// Receive reads the next message. Blank lines are skipped. It returns
// io.EOF when the peer closes the connection.
func (c *Conn) Receive() (Message, error) {
	for c.scanner.Scan() {
		line := c.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		return Decode(line)
	}
	if err := c.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, ErrLineTooLong
		}
		return nil, err
	}
	return nil, io.EOF
}

// ReadLoop calls handler for every message until the connection ends.
// Undecodable lines are passed to onError and skipped. A clean close
// returns nil.
func (c *Conn) ReadLoop(handler Handler, onError func(error)) error {
	for {
		msg, err := c.Receive()
		switch {
		case err == nil:
			handler(msg)
		case errors.Is(err, ErrMalformed):
			if onError != nil {
				onError(err)
			}
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrClosedPipe), errors.Is(err, net.ErrClosed):
			return nil
		default:
			return err
		}
	}
}

// SetReadDeadline bounds the next Receive.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}
