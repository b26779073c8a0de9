package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/jsonrpc"
	"github.com/vaidya/ahara/internal/models"
)

func newServeCommand() *cobra.Command {
	var tcpAddr string
	var tcpAllowRemote bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a JSON-RPC 2.0 scoring server",
		Long: `Start a JSON-RPC 2.0 scoring server.

By default, the server communicates over stdin/stdout using newline-delimited JSON.
Use --tcp to listen on a TCP address instead; "--tcp=" with no value uses
server.addr from .ahara.yaml.
TCP defaults to loopback (127.0.0.1) for security. Use --tcp-allow-remote to bind
to all interfaces.

Supported methods:
  ` + strings.Join(serveMethods(), "\n  "),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, pc, err := newEngine()
			if err != nil {
				return err
			}

			logger := slog.Default()
			registry := jsonrpc.NewMethodRegistry()
			jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(e, engine.DefaultProfile(pc)))
			server := jsonrpc.NewServer(registry, logger)

			if cmd.Flags().Changed("tcp") {
				addr := tcpAddr
				if addr == "" {
					addr = pc.Server.Addr
				}
				addr = resolveTCPAddr(addr, tcpAllowRemote, logger)

				listener, err := jsonrpc.NewTCPListener(addr, server)
				if err != nil {
					return fmt.Errorf("failed to start TCP server: %w", err)
				}
				defer listener.Close() //nolint:errcheck
				fmt.Fprintf(cmd.ErrOrStderr(), "JSON-RPC server listening on %s\n", listener.Addr())

				if err := listener.Serve(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "JSON-RPC server running on stdio")
			if err := server.ServeStdio(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "TCP address to listen on (e.g., :7400)")
	cmd.Flags().BoolVar(&tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")

	return cmd
}

// serveMethods lists the registered JSON-RPC methods with their summaries
// for help text.
func serveMethods() []string {
	registry := jsonrpc.NewMethodRegistry()
	jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(nil, models.PatientProfile{}))

	methods := registry.Methods()
	width := 0
	for _, m := range methods {
		width = max(width, len(m.Name))
	}
	lines := make([]string, len(methods))
	for i, m := range methods {
		lines[i] = padRight(m.Name, width) + "  " + m.Summary
	}
	return lines
}

// resolveTCPAddr ensures TCP addresses default to loopback unless --tcp-allow-remote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *slog.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// Likely just a port like "7400"; treat as ":7400".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("TCP server binding to all interfaces with no authentication", "address", addr)
		return addr
	}

	// Default to loopback if no host specified or if 0.0.0.0/:: is used without --tcp-allow-remote.
	if host == "" || host == "0.0.0.0" || host == "::" {
		logger.Info("JSON-RPC server listening on TCP (local only)")
		return net.JoinHostPort("127.0.0.1", port)
	}

	return addr
}
