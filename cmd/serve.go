package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngofund/ngoai/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket server",
	Long:  `Starts the ngoai HTTP server exposing /api/ai/agent, /api/ai/providers, /api/ai/capabilities and the /ws/chat websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		allowAll := cfg.Server.AllowAllOrigins || serveAllowAll

		dispatcher := newDispatcher(cfg)
		router := newRouter(cfg, dispatcher)

		srv := server.New(server.Config{
			Port:           port,
			AllowAll:       allowAll,
			AttemptTimeout: cfg.Timeout(),
		}, dispatcher, router, slog.Default())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		available := dispatcher.Available()
		if len(available) == 0 {
			slog.Warn("no AI provider configured; agent requests will fail until an API key is set")
		}
		fmt.Fprintf(os.Stderr, "ngoai server %s starting on port %d (providers: %v)\n", Version, port, available)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
