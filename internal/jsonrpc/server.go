package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vaidya/ahara/internal/models"
)

// Server dispatches JSON-RPC 2.0 requests to the methods of a registry.
type Server struct {
	registry *MethodRegistry
	logger   *slog.Logger
}

// NewServer creates a JSON-RPC server with the given method registry.
func NewServer(registry *MethodRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: registry, logger: logger}
}

// ServeTransport answers requests until the peer closes the stream, which
// returns nil, or ctx is done, which returns ctx.Err(). A malformed line is
// answered with an error and the next line is read.
func (s *Server) ServeTransport(ctx context.Context, t *Transport) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := t.ReadRequest()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			var rpcErr *Error
			if !errors.As(err, &rpcErr) {
				return fmt.Errorf("reading request: %w", err)
			}
			s.logger.Debug("rejected request line", "error", err)
			if err := t.WriteResponse(&Response{JSONRPC: Version, Error: rpcErr, ID: json.RawMessage("null")}); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			continue
		}

		resp := s.handle(ctx, req)
		if resp == nil {
			continue
		}
		if err := t.WriteResponse(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
}

// ServeStdio runs the server on stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return s.ServeTransport(ctx, NewTransport(stdin, stdout))
}

// handle runs one request. Notifications run but return nil; unknown
// methods and bad versions are not run at all.
func (s *Server) handle(ctx context.Context, req *Request) *Response {
	resp := &Response{JSONRPC: Version, ID: req.ID}
	if req.JSONRPC != Version {
		resp.Error = ErrInvalidRequest(`jsonrpc field must be "2.0"`)
	} else if m, ok := s.registry.lookup(req.Method); !ok {
		resp.Error = ErrMethodNotFound(req.Method)
	} else {
		resp.Result, resp.Error = s.call(ctx, m, req.Params)
	}

	if req.Notification() {
		return nil
	}
	return resp
}

func (s *Server) call(ctx context.Context, m Method, params json.RawMessage) (result json.RawMessage, rpcErr *Error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "method panicked", "method", m.Name, "panic", r)
			result, rpcErr = nil, ErrInternalError(fmt.Sprint(r))
		}
	}()

	v, err := m.Handler(ctx, params)
	if err != nil {
		rpcErr = errorFor(err)
		level := slog.LevelDebug
		if rpcErr.Code == CodeScorerUnavailable || rpcErr.Code == CodeScoringFailed {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "method failed", "method", m.Name, "code", rpcErr.Code, "error", err)
		return nil, rpcErr
	}

	data, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "encoding result", "method", m.Name, "error", err)
		return nil, ErrInternalError("result could not be encoded")
	}
	s.logger.DebugContext(ctx, "handled request", "method", m.Name, "duration", time.Since(start))
	return data, nil
}

// errorFor maps a handler error onto a JSON-RPC error. Input errors keep
// the offending field; scorer outages and cancellation get their own codes
// so clients can retry them.
func errorFor(err error) *Error {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	var invalid *models.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return ErrInvalidInput(invalid.Field, invalid.Reason)
	case errors.Is(err, models.ErrScorerUnavailable):
		return ErrScorerUnavailable(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCanceled(err.Error())
	default:
		return ErrScoringFailed(err.Error())
	}
}
