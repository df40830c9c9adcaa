package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/monitoring"
	"github.com/tlindeberg/signalscreen/internal/screener"
	"github.com/tlindeberg/signalscreen/pkg/data"
	"github.com/tlindeberg/signalscreen/pkg/reporting"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file (defaults apply when omitted)")
		universe    = flag.String("universe", "", "detector universe JSON file (required)")
		seriesDir   = flag.String("series-dir", "", "directory of SYMBOL.csv files for market enrichment")
		outputDir   = flag.String("output", "results", "output directory for reports")
		writeCSV    = flag.Bool("csv", true, "write the decision list as CSV")
		writeJSON   = flag.Bool("json", true, "write the full run as JSON")
		writeXLSX   = flag.Bool("xlsx", false, "write a decision + audit workbook")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address after the run")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	// Local overrides, same convention as the rest of our tooling.
	_ = godotenv.Load()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Logger = logger

	if *universe == "" {
		*universe = os.Getenv("SIGNALSCREEN_UNIVERSE")
	}
	if *universe == "" {
		flag.Usage()
		logger.Fatal().Msg("no universe file given")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	uni, err := data.NewJSONUniverseProvider().LoadUniverse(*universe)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load universe")
	}
	logger.Info().Int("candidates", len(uni.Candidates)).Str("file", *universe).Msg("universe loaded")

	candidates := uni.Candidates
	if *seriesDir != "" {
		candidates = enrichFromSeries(logger, candidates, *seriesDir)
	}

	orch, err := screener.New(cfg, uni.Tables(cfg.HomeCurrency), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct screener")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := orch.Screen(ctx, candidates)

	reporter := reporting.NewDefaultReporter()
	reporter.OutputRun(run)

	if *writeCSV {
		path := filepath.Join(*outputDir, fmt.Sprintf("decisions_%s.csv", run.RunID))
		if err := reporter.WriteDecisionsCSV(run, path); err != nil {
			logger.Error().Err(err).Msg("failed to write CSV report")
		} else {
			logger.Info().Str("path", path).Msg("CSV report written")
		}
	}
	if *writeJSON {
		path := filepath.Join(*outputDir, fmt.Sprintf("run_%s.json", run.RunID))
		if err := reporter.WriteRunJSON(run, path); err != nil {
			logger.Error().Err(err).Msg("failed to write JSON report")
		} else {
			logger.Info().Str("path", path).Msg("JSON report written")
		}
	}
	if *writeXLSX {
		path := filepath.Join(*outputDir, fmt.Sprintf("run_%s.xlsx", run.RunID))
		if err := reporter.WriteRunXLSX(run, path); err != nil {
			logger.Error().Err(err).Msg("failed to write Excel report")
		} else {
			logger.Info().Str("path", path).Msg("Excel report written")
		}
	}

	if *metricsAddr != "" {
		serveMetrics(ctx, logger, *metricsAddr)
	}
}

// loadConfig loads the YAML configuration, or the built-in defaults when no
// file is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("SIGNALSCREEN_CONFIG")
	}
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(path)
}

// enrichFromSeries fills missing market inputs from SYMBOL.csv files in dir.
// A missing file only means the cost guard will run on conservative
// estimates, so it logs and moves on.
func enrichFromSeries(logger zerolog.Logger, candidates []types.Candidate, dir string) []types.Candidate {
	provider := data.NewCachedSeriesProvider(data.NewCSVProvider())

	out := make([]types.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = c
		path := filepath.Join(dir, c.Symbol+".csv")
		series, err := provider.LoadSeries(path)
		if err != nil {
			logger.Warn().Str("symbol", c.Symbol).Err(err).Msg("no series data, candidate not enriched")
			continue
		}
		out[i] = data.EnrichCandidate(c, series)
	}
	return out
}

// serveMetrics exposes the run metrics until the process is interrupted.
func serveMetrics(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	logger.Info().Str("addr", addr).Msg("serving metrics, Ctrl-C to exit")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
