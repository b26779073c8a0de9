package jsonrpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
)

// MaxRequestSize bounds one request line. Charts of a few weeks fit
// comfortably.
const MaxRequestSize = 4 << 20

// Transport reads newline-delimited requests and writes responses.
type Transport struct {
	scanner *bufio.Scanner

	mu  sync.Mutex
	enc *json.Encoder
}

// NewTransport wraps r and w. Each request must be a single line.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxRequestSize)
	return &Transport{scanner: sc, enc: json.NewEncoder(w)}
}

// ReadRequest returns the next request, skipping blank lines. A line that
// is not JSON yields a parse *Error and one that is JSON but not a request
// object an invalid-request *Error; reading can continue after either. At
// the end of input it returns io.EOF.
func (t *Transport) ReadRequest() (*Request, error) {
	for t.scanner.Scan() {
		line := bytes.TrimSpace(t.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, ErrParseError("invalid JSON")
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			return nil, ErrInvalidRequest(err.Error())
		}
		return &req, nil
	}
	if err := t.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// WriteResponse writes resp as one line. It is safe for concurrent use.
func (t *Transport) WriteResponse(resp *Response) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Encode(resp)
}

// TCPListener serves each accepted connection with a Server.
type TCPListener struct {
	listener net.Listener
	server   *Server
}

// NewTCPListener creates a TCP listener on the given address.
func NewTCPListener(addr string, server *Server) (*TCPListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	return &TCPListener{listener: ln, server: server}, nil
}

// Addr returns the listener's network address.
func (tl *TCPListener) Addr() net.Addr {
	return tl.listener.Addr()
}

// Serve accepts connections until the listener is closed. Cancelling ctx
// closes the listener and every open connection; Serve returns once all
// connections have finished.
func (tl *TCPListener) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		tl.listener.Close() //nolint:errcheck
	})
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := tl.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		wg.Go(func() { tl.serveConn(ctx, conn) })
	}
}

func (tl *TCPListener) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close() //nolint:errcheck
	stop := context.AfterFunc(ctx, func() {
		conn.Close() //nolint:errcheck
	})
	defer stop()

	logger := tl.server.logger.With("remote", conn.RemoteAddr().String())
	logger.Debug("client connected")
	if err := tl.server.ServeTransport(ctx, NewTransport(conn, conn)); err != nil && ctx.Err() == nil {
		logger.Debug("connection closed", "error", err)
	}
}

// Close shuts down the TCP listener.
func (tl *TCPListener) Close() error {
	return tl.listener.Close()
}
