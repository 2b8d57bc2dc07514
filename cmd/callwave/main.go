package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/callwave/internal/profile"
	"github.com/hrygo/callwave/plugin/ai"
	"github.com/hrygo/callwave/plugin/ai/dateinfer"
	"github.com/hrygo/callwave/server/dispatcher"
	"github.com/hrygo/callwave/internal/observability"
	apiv1 "github.com/hrygo/callwave/server/router/api/v1"
	"github.com/hrygo/callwave/server/scheduling/resolve"
	"github.com/hrygo/callwave/server/scheduling/window"
	"github.com/hrygo/callwave/store"
	"github.com/hrygo/callwave/store/db"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "callwave",
	Short: "Outbound-call scheduling core: window gating and free-text schedule resolution",
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [phrase]",
	Short: "Resolve a free-text rescheduling phrase and print the outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return resolvePhrase(args[0])
	},
}

func init() {
	viper.SetEnvPrefix("callwave")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the admin server")
	rootCmd.PersistentFlags().Int("port", 8231, "port of the admin server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("timezone", "", "reference civil zone for job windows (IANA identifier)")
	rootCmd.PersistentFlags().Int("default-hour", 0, "reference-zone hour applied to date-only schedules")
	rootCmd.PersistentFlags().Duration("dispatch-interval", 0, "dispatcher tick interval")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "timezone", "default-hour", "dispatch-interval"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(resolveCmd)
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:             viper.GetString("mode"),
		Addr:             viper.GetString("addr"),
		Port:             viper.GetInt("port"),
		Data:             viper.GetString("data"),
		Driver:           viper.GetString("driver"),
		DSN:              viper.GetString("dsn"),
		Timezone:         viper.GetString("timezone"),
		DefaultHour:      viper.GetInt("default-hour"),
		DispatchInterval: viper.GetDuration("dispatch-interval"),
		Version:          version,
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newResolver(p *profile.Profile) (*resolve.Resolver, error) {
	zone, err := p.ReferenceZone()
	if err != nil {
		return nil, err
	}

	opts := []resolve.Option{}
	if p.IsAIEnabled() {
		provider, err := ai.NewProvider(&ai.Config{
			BaseURL:   p.AIBaseURL,
			APIKey:    p.AIAPIKey,
			ChatModel: p.AIModel,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, resolve.WithInferencer(dateinfer.New(provider, zone, p.DefaultHour)))
	}

	return resolve.New(zone, p.DefaultHour, opts...)
}

func serve() error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	logger := observability.SetupLogger(p.Mode)
	logger.Info("starting callwave",
		"version", p.Version,
		"mode", p.Mode,
		"driver", p.Driver,
		"timezone", p.Timezone,
		"ai_enabled", p.IsAIEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		return err
	}
	st := store.New(dbDriver, p)
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	if err := st.EnsureDefaultJobWindows(ctx); err != nil {
		return err
	}

	resolver, err := newResolver(p)
	if err != nil {
		return err
	}

	zone, err := p.ReferenceZone()
	if err != nil {
		return err
	}

	// The telephony integration registers real sinks here; the default
	// sink only records that the window gate opened.
	disp := dispatcher.New(st, zone, p.DispatchInterval)
	for _, job := range window.AllJobNames {
		job := job
		disp.Register(job, dispatcher.SinkFunc(func(_ context.Context, job window.JobName, batchID string) error {
			logger.Info("window open, no call sink registered", "job", string(job), "batch_id", batchID)
			return nil
		}))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	apiv1.NewAPIV1Service(p, st, resolver).Register(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return disp.Run(gctx)
	})
	g.Go(func() error {
		address := fmt.Sprintf("%s:%d", p.Addr, p.Port)
		logger.Info("admin server listening", "address", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	logger.Info("callwave stopped")
	return nil
}

func resolvePhrase(phrase string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	observability.SetupLogger(p.Mode)

	resolver, err := newResolver(p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schedule := resolver.Resolve(ctx, phrase, time.Now().UTC())
	if schedule == nil {
		fmt.Println("no schedule")
		return nil
	}

	zone, _ := p.ReferenceZone()
	fmt.Printf("%s (%s, via %s tier)\n",
		schedule.At.Format(time.RFC3339),
		schedule.At.In(zone).Format("Mon Jan 2 15:04 MST"),
		schedule.Tier)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
