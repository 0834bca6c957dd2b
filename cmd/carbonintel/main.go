package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/irfon92/carbon-dashboard/internal/alerts"
	"github.com/irfon92/carbon-dashboard/internal/application"
	"github.com/irfon92/carbon-dashboard/internal/cache"
	httpserver "github.com/irfon92/carbon-dashboard/internal/interfaces/http"
	"github.com/irfon92/carbon-dashboard/internal/persistence"
	"github.com/irfon92/carbon-dashboard/internal/persistence/postgres"
	"github.com/irfon92/carbon-dashboard/internal/sources"
)

const (
	appName = "carbonintel"
	version = "v1.2.0"
)

var configPath string

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Carbon market intelligence dashboard",
		Version: version,
		Long: `carbonintel tracks corporate carbon commitments and climate-tech
funding, scores each event for dovu relevance, and serves the
filtered feeds, alerts, and summary statistics over HTTP.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Long:  "Serves the commitments, funding, alerts, and stats endpoints over the latest snapshot",
		RunE:  runServe,
	}
	serveCmd.Flags().Duration("refresh-interval", 0, "Background refresh interval (0 disables)")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Run one data refresh pass and exit",
		Long:  "Collects from all configured sources, normalizes, and persists a dated snapshot",
		RunE:  runRefresh,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into the snapshot store",
		Long:  "Persists a representative demo batch so the dashboard has content without live sources",
		RunE:  runSeed,
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print summary statistics for the latest snapshot",
		RunE:  runSummary,
	}

	rootCmd.AddCommand(serveCmd, refreshCmd, seedCmd, summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// deps bundles the wired collaborators shared by the subcommands.
type deps struct {
	cfg     *application.Config
	store   *persistence.Store
	stats   *cache.StatsCache
	archive postgres.ArchiveRepo
	db      *sqlx.DB
}

func (d *deps) close() {
	if d.stats != nil {
		if err := d.stats.Close(); err != nil {
			log.Warn().Err(err).Msg("cache close failed")
		}
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			log.Warn().Err(err).Msg("db close failed")
		}
	}
}

func buildDeps() (*deps, error) {
	cfg, err := application.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	store, err := persistence.NewStore(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	d := &deps{
		cfg:   cfg,
		store: store,
		stats: cache.New(cfg.Redis.Addr, cfg.Redis.DB, cfg.RedisTTL()),
	}

	if cfg.Postgres.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		d.db = db
		d.archive = postgres.NewArchiveRepo(db, cfg.PostgresTimeout())
	}

	return d, nil
}

func newRefresher(d *deps, metrics application.RefreshObserver) *application.Refresher {
	var commitmentTrackers, fundingTrackers []sources.Tracker
	if d.cfg.Sources.Enabled {
		commitmentTrackers = []sources.Tracker{sources.NewCommitmentTracker()}
		fundingTrackers = []sources.Tracker{sources.NewFundingTracker()}
	}
	return application.NewRefresher(commitmentTrackers, fundingTrackers, d.store, d.archive, d.stats, metrics)
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	// Serve whatever snapshot is already on disk; an empty store is
	// fine until the first refresh.
	if _, err := d.store.Reload(time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("initial snapshot load failed, starting empty")
	}

	metrics := httpserver.NewMetricsRegistry()
	server := httpserver.NewServer(httpserver.ServerConfig{
		Addr:           d.cfg.ListenAddr(),
		ReadTimeout:    d.cfg.ReadTimeout(),
		WriteTimeout:   d.cfg.WriteTimeout(),
		RequestTimeout: d.cfg.RequestTimeout(),
		APIKey:         d.cfg.Server.APIKey,
	}, d.store, d.stats, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := durationFlag(cmd.Flags(), "refresh-interval")
	if interval > 0 {
		refresher := newRefresher(d, metrics)
		go refreshLoop(ctx, refresher, interval, d.cfg.SourcesTimeout())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func durationFlag(fs *pflag.FlagSet, name string) time.Duration {
	v, err := fs.GetDuration(name)
	if err != nil {
		return 0
	}
	return v
}

func refreshLoop(ctx context.Context, refresher *application.Refresher, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, timeout)
			if _, err := refresher.Run(runCtx, time.Now().UTC()); err != nil {
				log.Error().Err(err).Msg("background refresh failed")
			}
			cancel()
		}
	}
}

func runRefresh(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SourcesTimeout())
	defer cancel()

	snap, err := newRefresher(d, nil).Run(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("Refreshed: %d commitments, %d funding events\n",
		len(snap.Commitments), len(snap.Funding))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	now := time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	refresher := application.NewRefresher(nil, nil, d.store, d.archive, d.stats, nil)
	snap, err := refresher.Seed(ctx, sources.DemoCommitments(now), sources.DemoFunding(now), now)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded: %d commitments, %d funding events\n",
		len(snap.Commitments), len(snap.Funding))
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.close()

	now := time.Now().UTC()
	snap, err := d.store.Reload(now)
	if err != nil {
		return err
	}

	stats := alerts.Summarize(snap.Commitments, snap.Funding, now)
	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
