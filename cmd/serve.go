package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/city-guide/internal/api"
	"github.com/sells-group/city-guide/internal/store"
	"github.com/sells-group/city-guide/internal/theme"
)

var servePort int

// cacheSweepInterval is how often expired city guides are purged.
const cacheSweepInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the city guide HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		handler, err := buildRouter(st)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		g.Go(func() error {
			sweepCityCache(gctx, st, cacheSweepInterval)
			return nil
		})

		return g.Wait()
	},
}

// buildRouter wires the API handler from config and st.
func buildRouter(st store.Store) (http.Handler, error) {
	provider, err := initProvider(cfg.Guide, st)
	if err != nil {
		return nil, err
	}
	finder, err := initFinder(cfg.Neighborhood)
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.Deps{
		Guide:         provider,
		Finder:        finder,
		Themes:        theme.NewService(st),
		DefaultFilter: defaultFilter(cfg.Neighborhood),
		CookieName:    cfg.Theme.CookieName,
		CORSOrigins:   cfg.Server.CORSOrigins,
	}), nil
}

type cityCacheSweeper interface {
	DeleteExpiredCities(ctx context.Context) (int, error)
}

// sweepCityCache purges expired guides every interval until ctx is done.
func sweepCityCache(ctx context.Context, st cityCacheSweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.DeleteExpiredCities(ctx)
			if err != nil {
				zap.L().Warn("city cache sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Info("city cache swept", zap.Int("deleted", n))
			}
		}
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
