package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpotapov/go-htmlparser/server"
)

func LoggerMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request", "method", r.Method, "url", r.URL)
		next.ServeHTTP(w, r)
	})
}

func newServeCmd() *cobra.Command {
	var addr string
	var maxBody int64
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			opts := pf.options()

			h := &server.Handler{
				Options:     &opts,
				MaxBodySize: maxBody,
				Logger:      logger,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting server at http://%s\n", displayAddr)

			return server.ListenAndServe(ctx, addr, LoggerMiddleware(h, logger))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().Int64Var(&maxBody, "max-body", 0, "maximum markup size in bytes (default 1 MiB)")
	pf.register(cmd)

	return cmd
}
