package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuzeguitarist/qrgen/internal/app"
	"github.com/yuzeguitarist/qrgen/internal/config"
	"github.com/yuzeguitarist/qrgen/internal/logger"
	"github.com/yuzeguitarist/qrgen/internal/web"
	"go.uber.org/zap"
)

const browserDelay = 1500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"web"},
	Short:   "Run the QR HTTP server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.LogLevel); err != nil {
			return err
		}
		defer logger.Sync()

		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Listen, err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, ln, cfg, logger.Log, cmd.OutOrStdout())
	},
}

// serve runs the HTTP server on ln until ctx is done, then drains in-flight
// requests within cfg.ShutdownTimeout. ln is closed on return.
func serve(ctx context.Context, ln net.Listener, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	srv := web.NewServer(log, cfg.CORSOrigins)
	httpSrv := &http.Server{
		Handler:           srv.Router(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	url := browseURL(ln.Addr())
	fmt.Fprintln(out, app.Color("Listening:", app.ColorOK), url)
	log.Info("server starting", zap.String("addr", ln.Addr().String()))

	if cfg.OpenBrowser {
		t := time.AfterFunc(browserDelay, func() {
			if err := app.OpenBrowser(url); err != nil {
				log.Warn("open browser", zap.Error(err))
			}
		})
		defer t.Stop()
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.Serve(ln) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// browseURL turns a listener address into a URL a local browser can open.
func browseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + "/"
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// addOverrideFlags registers the flags loadConfig lets win over file and env.
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().String("listen", "", "listen address (default from config: "+app.DefaultListen+")")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().Bool("open", false, "open the landing page in a browser after start")
}

func init() {
	addOverrideFlags(serveCmd)
}
