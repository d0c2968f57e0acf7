package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ask-assistant/internal/server"
	"github.com/ziadkadry99/ask-assistant/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant web page",
	Long:  `Starts an HTTP server with the assistant page, a JSON endpoint at /api/ask and a WebSocket at /ws/ask.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := setupPage()
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, web.New(p, web.Options{AllowAllOrigins: cfg.Server.AllowAllOrigins}))

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "assistant v%s starting on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Provider: %s\n", cfg.Provider)
		fmt.Fprintf(os.Stderr, "  Model: %s\n", cfg.Model)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config, 8501)")
	rootCmd.AddCommand(serveCmd)
}
