package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jaanu-oss/Phonepae/ETL/config"
	"github.com/jaanu-oss/Phonepae/ETL/extractors"
	"github.com/jaanu-oss/Phonepae/ETL/fetch"
	"github.com/jaanu-oss/Phonepae/ETL/load"
	"github.com/jaanu-oss/Phonepae/ETL/models"
	"github.com/jaanu-oss/Phonepae/ETL/transform"
	"github.com/jaanu-oss/Phonepae/ETL/utils"
	"github.com/jaanu-oss/Phonepae/database"
)

// PipelineRunner wires the pipeline components together and drives a run
// from fetch to load
type PipelineRunner struct {
	config      config.ETLConfig
	logger      *utils.ETLLogger
	fetcher     *fetch.Fetcher
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	runLogRepo  *models.MySQLRunLogRepository
	closeDB     func() error
}

// NewPipelineRunner creates a fully wired PipelineRunner.
// A store that cannot be reached at all is the one fatal error of the
// pipeline; everything downstream degrades to logged skips.
func NewPipelineRunner() (*PipelineRunner, error) {
	etlConfig := config.GetConfig()

	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Initializing pipeline runner")

	db, err := config.ConnectDatabase(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err := database.CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up the schema: %w", err)
	}

	runLogRepo := models.NewMySQLRunLogRepository(db)
	if err := runLogRepo.CreateRunLogTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create the run log table: %w", err)
	}

	if lastRun, err := runLogRepo.GetLastSuccessfulRun(); err != nil {
		logger.Error("Failed to read the run history: %v", err)
	} else if lastRun != nil {
		logger.Info("Last successful run finished at %s (%d records loaded)",
			lastRun.EndTime.Format(time.RFC3339), lastRun.RecordsLoaded)
	}

	return &PipelineRunner{
		config:      etlConfig,
		logger:      logger,
		fetcher:     fetch.NewFetcher(etlConfig, logger),
		extractor:   extractors.NewExtractor(logger),
		transformer: transform.NewTransformer(logger),
		loadManager: load.NewLoadManager(db, logger, etlConfig.BatchSize),
		runLogRepo:  runLogRepo,
		closeDB:     db.Close,
	}, nil
}

// Close releases the database connection
func (r *PipelineRunner) Close() {
	r.logger.Info("Shutting down pipeline runner")
	if err := r.closeDB(); err != nil {
		r.logger.Error("Failed to close the database connection: %v", err)
	}
}

// ExecutePipeline runs one full pipeline pass: fetch, walk, map, load
func (r *PipelineRunner) ExecutePipeline() error {
	r.logger.LogPipelineStart()
	startTime := time.Now()

	logID, err := r.runLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Failed to create a run log entry: %v", err)
		return fmt.Errorf("failed to create a run log entry: %w", err)
	}

	fail := func(step string, err error) error {
		msg := fmt.Sprintf("Pipeline failed during %s: %v", step, err)
		r.logger.Error(msg)
		if logErr := r.runLogRepo.UpdateLogEntryFailure(logID, time.Now(), msg); logErr != nil {
			r.logger.Error("Failed to update the run log entry: %v", logErr)
		}
		return fmt.Errorf("%s: %w", step, err)
	}

	// 1. Fetch the source repository
	r.logger.Info("[Step 1/4] Fetching the Pulse repository...")
	dataDir, err := r.fetcher.Fetch()
	if err != nil {
		return fail("fetch", err)
	}

	// 2. Walk the document tree
	r.logger.Info("[Step 2/4] Walking the document tree...")
	extracted, _, err := r.extractor.Extract(dataDir)
	if err != nil {
		return fail("extract", err)
	}

	if extracted.TotalDocuments() == 0 {
		r.logger.Info("No documents found, nothing to load")
		if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(), 0, 0, 0); err != nil {
			r.logger.Error("Failed to update the run log entry: %v", err)
		}
		return nil
	}

	// 3. Map documents to flat records
	r.logger.Info("[Step 3/4] Mapping documents to records...")
	transformed, err := r.transformer.Transform(extracted)
	if err != nil {
		return fail("transform", err)
	}

	// 4. Load records into the fact tables
	r.logger.Info("[Step 4/4] Loading records into MySQL...")
	loaded, failedBatches := r.loadManager.Load(transformed)
	if failedBatches > 0 {
		r.logger.Error("%d table(s) had failing batches; the rest of the load completed", failedBatches)
	}

	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(),
		extracted.TotalDocuments(), transformed.TotalRecords(), loaded); err != nil {
		r.logger.Error("Failed to update the run log entry: %v", err)
	}

	r.logger.LogPipelineComplete(startTime, extracted.TotalDocuments(), transformed.TotalRecords(), loaded)
	return nil
}

// StartScheduler runs the pipeline on a fixed interval until the context
// is canceled
func (r *PipelineRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Starting the pipeline scheduler with interval %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Scheduled pipeline run starting")
		if err := r.ExecutePipeline(); err != nil {
			r.logger.Error("Scheduled pipeline run failed: %v", err)
		}
	})
	if err != nil {
		r.logger.Error("Failed to configure the scheduler: %v", err)
		return
	}

	scheduler.StartAsync()

	<-ctx.Done()

	scheduler.Stop()
	r.logger.Info("Pipeline scheduler stopped")
}

// RunOnce executes the pipeline a single time and exits non-zero on failure
func RunOnce() {
	runner, err := NewPipelineRunner()
	if err != nil {
		log.Fatalf("Failed to create the pipeline runner: %v", err)
	}

	err = runner.ExecutePipeline()
	runner.Close()

	if err != nil {
		runner.logger.Error("Pipeline run FAILED")
		os.Exit(1)
	}

	runner.logger.Info("Pipeline run SUCCEEDED")
}

// RunScheduled executes the pipeline on a schedule until interrupted
func RunScheduled() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Shutdown signal received, stopping the pipeline runner...")
		cancel()
	}()

	runner, err := NewPipelineRunner()
	if err != nil {
		log.Fatalf("Failed to create the pipeline runner: %v", err)
	}
	defer runner.Close()

	runner.StartScheduler(ctx)
}

func main() {
	modePtr := flag.String("mode", "once", "Run mode: once or scheduled")
	flag.Parse()

	log.Println("Starting the Pulse pipeline in mode:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce()
	case "scheduled":
		RunScheduled()
	default:
		log.Println("Unknown mode:", *modePtr)
		log.Println("Available modes: once, scheduled")
		os.Exit(1)
	}

	log.Println("Pulse pipeline finished")
}
