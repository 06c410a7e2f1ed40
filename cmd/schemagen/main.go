// cmd/schemagen/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"schema-engine/internal/adapters/enhancement"
	"schema-engine/internal/adapters/review"
	"schema-engine/internal/common/config"
	"schema-engine/internal/common/database"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/common/observability"
	"schema-engine/internal/history"
	"schema-engine/internal/models"
	"schema-engine/internal/publish"
	"schema-engine/internal/schema/generator"
	"schema-engine/internal/schema/schematype"
	"schema-engine/internal/schema/validator"
	"schema-engine/pkg/ruleset"
)

// runInput is the resolved payload the fetch layer hands over: a shop
// snapshot, the ordered products, and optionally pre-fetched review data.
type runInput struct {
	Shop     models.ShopInfo               `json:"shop"`
	Products []models.Product              `json:"products"`
	Reviews  map[string]*models.ReviewData `json:"reviews,omitempty"`
}

// runOutput pairs the package with its validation report.
type runOutput struct {
	Package    json.RawMessage             `json:"package"`
	Validation *validator.ValidationResult `json:"validation"`
}

func main() {
	var (
		inputPath    = flag.String("input", "", "path to the resolved shop+products JSON file")
		outputPath   = flag.String("output", "", "path for the generated package (default stdout)")
		validateOnly = flag.Bool("validate-only", false, "validate an existing package instead of generating")
		strict       = flag.Bool("strict", false, "enable the search platform rule set")
		detailed     = flag.Bool("detailed", false, "include per-finding rule ids and hints")
		metricsAddr  = flag.String("metrics-addr", "", "address for the prometheus endpoint, e.g. :9102")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *strict {
		cfg.Validation.StrictPlatformCheck = true
	}
	if *detailed {
		cfg.Validation.DetailedValidation = true
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Warn("metrics endpoint stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, obs, *inputPath, *outputPath, *validateOnly); err != nil {
		log.Error("run failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability, inputPath, outputPath string, validateOnly bool) error {
	if inputPath == "" {
		return fmt.Errorf("-input is required")
	}

	reg, err := loadRuleset(cfg)
	if err != nil {
		return err
	}
	v := validator.New(reg,
		validator.WithStrictPlatformCheck(cfg.Validation.StrictPlatformCheck),
		validator.WithDetailedFindings(cfg.Validation.DetailedValidation),
	)

	if validateOnly {
		return validatePackageFile(inputPath, outputPath, v)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var input runInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	opts, cleanup := adapterOptions(cfg, log, &input)
	defer cleanup()

	gen, err := generator.New(cfg, log, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	pkg, err := gen.Generate(ctx, &input.Shop, input.Products)
	if err != nil {
		obs.RecordRun(ctx, "failed")
		return err
	}
	status := "ok"
	if pkg.Metadata.Incomplete {
		status = "incomplete"
	}
	obs.RecordRun(ctx, status)
	obs.RecordRunDuration(ctx, time.Since(start), status)

	result := v.Validate(pkg)

	if err := writeOutput(outputPath, pkg, result); err != nil {
		return err
	}

	recordAndPublish(ctx, cfg, log, pkg, result)
	return nil
}

// adapterOptions wires the optional adapters the configuration enables.
func adapterOptions(cfg *config.Config, log logger.Logger, input *runInput) ([]generator.Option, func()) {
	var opts []generator.Option
	cleanup := func() {}

	if cfg.Generation.EnableAIFeatures && cfg.APIs.Enhancement.BaseURL != "" {
		opts = append(opts, generator.WithEnhancementAdapter(enhancement.NewHTTPAdapter(
			cfg.APIs.Enhancement.BaseURL,
			cfg.APIs.Enhancement.APIKey,
			cfg.APIs.Enhancement.Model,
			time.Duration(cfg.APIs.Enhancement.Timeout)*time.Millisecond,
		)))
	}

	if cfg.Generation.EnableReviewIntegration {
		var adapter review.Adapter
		switch {
		case len(input.Reviews) > 0:
			adapter = review.NewStatic(input.Reviews)
		case cfg.APIs.Reviews.BaseURL != "":
			adapter = review.NewHTTPAdapter(
				cfg.APIs.Reviews.BaseURL,
				cfg.APIs.Reviews.APIKey,
				cfg.APIs.Reviews.Platform,
				time.Duration(cfg.APIs.Reviews.Timeout)*time.Millisecond,
			)
		}
		if adapter != nil && cfg.Database.Redis.Address != "" {
			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err == nil {
				adapter = review.NewCached(adapter, rdb.GetClient(),
					time.Duration(cfg.APIs.Reviews.CacheTTL)*time.Second, log)
				cleanup = func() { rdb.Close() }
			}
		}
		if adapter != nil {
			opts = append(opts, generator.WithReviewAdapter(adapter))
		}
	}

	return opts, cleanup
}

// recordAndPublish drives the optional caller-boundary stores. Failures are
// logged, never fatal to a finished run.
func recordAndPublish(ctx context.Context, cfg *config.Config, log logger.Logger, pkg *schematype.SchemaPackage, result *validator.ValidationResult) {
	if cfg.Database.Postgres.Host != "" {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			log.Warn("history store unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			defer pg.Close()
			store := history.NewPostgresStore(pg.GetDB())
			entry := &history.Entry{
				RunID:         pkg.RunID,
				ShopDomain:    pkg.ShopDomain,
				GeneratedAt:   pkg.GeneratedAt,
				ProductCount:  pkg.Metadata.ProductCount,
				DocumentCount: pkg.Metadata.DocumentCount,
				FailureCount:  len(pkg.Metadata.Failures),
				Score:         result.Score,
				Valid:         result.Valid,
				Incomplete:    pkg.Metadata.Incomplete,
			}
			if err := store.Record(ctx, entry); err != nil {
				log.Warn("history record failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	if len(cfg.Database.Elasticsearch.Addresses) > 0 || cfg.Database.Elasticsearch.URL != "" {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			log.Warn("search index unavailable", map[string]interface{}{"error": err.Error()})
			return
		}
		publisher := publish.NewElastic(es.Client, log)
		if err := publisher.Publish(ctx, pkg); err != nil {
			log.Warn("publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

func loadRuleset(cfg *config.Config) (*ruleset.Registry, error) {
	if cfg.Validation.RulesetPath == "" {
		return ruleset.Default(), nil
	}
	return ruleset.Load(cfg.Validation.RulesetPath)
}

func validatePackageFile(inputPath, outputPath string, v *validator.Validator) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read package: %w", err)
	}

	var pkg schematype.SchemaPackage
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return fmt.Errorf("parse package: %w", err)
	}

	result := v.Validate(&pkg)
	return writeJSON(outputPath, result)
}

func writeOutput(outputPath string, pkg *schematype.SchemaPackage, result *validator.ValidationResult) error {
	pkgJSON, err := json.Marshal(pkg)
	if err != nil {
		return err
	}
	return writeJSON(outputPath, runOutput{Package: pkgJSON, Validation: result})
}

func writeJSON(outputPath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
