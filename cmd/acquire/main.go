// Command acquire runs the adaptive asynchronous acquisition engine: it
// pages through a public app storefront's JSON endpoints, validates and
// maps each response into typed entities, and persists them to Postgres,
// while an HTTP surface reports process health.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/appvocai/acquire/pkg/acqrequest"
	"github.com/appvocai/acquire/pkg/config"
	"github.com/appvocai/acquire/pkg/control"
	"github.com/appvocai/acquire/pkg/controller"
	"github.com/appvocai/acquire/pkg/database"
	"github.com/appvocai/acquire/pkg/header"
	"github.com/appvocai/acquire/pkg/identity"
	"github.com/appvocai/acquire/pkg/monitor"
	"github.com/appvocai/acquire/pkg/orchestration"
	"github.com/appvocai/acquire/pkg/pipeline"
	"github.com/appvocai/acquire/pkg/retention"
	"github.com/appvocai/acquire/pkg/session"
	"github.com/appvocai/acquire/pkg/storefront"
	"github.com/appvocai/acquire/pkg/version"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("warning: could not load %s: %v", envPath, err)
	} else {
		log.Printf("loaded environment from %s", envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	gin.SetMode(getEnv("GIN_MODE", "release"))

	log.Printf("starting %s", version.Full())
	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("failed to initialize configuration: %v", err)
	}

	dbCfg := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}
	dbClient, err := database.NewClient(ctx, dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Printf("error closing database client: %v", err)
		}
	}()
	log.Println("connected to PostgreSQL and applied migrations")

	errorSink := database.NewErrorSink(dbClient)

	retentionSvc := retention.NewService(cfg.Retention, dbClient)
	retentionSvc.Start(ctx)
	defer retentionSvc.Stop()

	gen := identity.NewGenerator(identity.NewCounter(cfg.Identity.CounterPath), cfg.Environment)

	category := cfg.Storefront.CategoryID
	if category == "" {
		category = cfg.Storefront.AppID
	}
	projectPassport, err := identity.NewProjectPassport(gen, category)
	if err != nil {
		log.Fatalf("failed to mint project passport: %v", err)
	}
	project := orchestration.NewProject(projectPassport.ProjectID, category, "", time.Hour)

	pool := header.NewPool(nil)

	runErrs := make([]error, 0, 2)
	if cfg.Storefront.CategoryID != "" {
		baseURL, params := storefront.SearchParams(cfg.Storefront.CategoryID, cfg.Storefront.StartPage, cfg.Storefront.Limit)
		if err := runJob(ctx, cfg, gen, project, projectPassport, pipeline.DataTypeAppData, baseURL, params, "", dbClient, errorSink, pool); err != nil {
			runErrs = append(runErrs, err)
			slog.Error("app data acquisition job failed", "error", err)
		}
	}
	if cfg.Storefront.AppID != "" {
		baseURL, params := storefront.ReviewParams(cfg.Storefront.AppID, cfg.Storefront.StartPage*cfg.Storefront.Limit, (cfg.Storefront.StartPage+1)*cfg.Storefront.Limit)
		if err := runJob(ctx, cfg, gen, project, projectPassport, pipeline.DataTypeAppReview, baseURL, params, cfg.Storefront.AppID, dbClient, errorSink, pool); err != nil {
			runErrs = append(runErrs, err)
			slog.Error("review acquisition job failed", "error", err)
		}
	}

	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		dbHealth, err := database.Health(reqCtx, dbClient.DB())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": dbHealth, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"database":   dbHealth,
			"version":    version.Full(),
			"project_id": project.ProjectID,
			"job_count":  project.JobCount,
			"job_errors": len(runErrs),
		})
	})

	log.Printf("HTTP server listening on :%s", httpPort)
	if err := router.Run(":" + httpPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// stageConfig maps one YAML-sourced controller stage config into the
// controller package's runtime shape.
func stageConfig(y config.StageConfigYAML) controller.StageConfig {
	return controller.StageConfig{
		Rate:             controller.Range{Base: y.Rate.Base, Min: y.Rate.Min, Max: y.Rate.Max},
		Concurrency:      controller.Range{Base: y.Concurrency.Base, Min: y.Concurrency.Min, Max: y.Concurrency.Max},
		Temperature:      y.Temperature,
		ResponseTime:     y.ResponseTime,
		StepResponseTime: y.StepResponseTime,
		StepIncrease:     y.StepIncrease,
		StepDecrease:     y.StepDecrease,
		Threshold:        y.Threshold,
		WindowSize:       y.WindowSize,
		K:                y.K,
		M:                y.M,
	}
}

// runJob drives one full acquisition job over dataType to completion:
// mint its lineage, build a fresh adaptive session, and page through
// baseURL/params until the request generator is exhausted.
func runJob(
	ctx context.Context,
	cfg *config.Config,
	gen *identity.Generator,
	project *orchestration.Project,
	projectPassport identity.ProjectPassport,
	dataType pipeline.DataType,
	baseURL string,
	params map[string]string,
	appID string,
	dbClient *database.Client,
	errorSink monitor.ErrorSink,
	pool *header.Pool,
) error {
	jobPassport, err := identity.NewJobPassport(gen, projectPassport, string(dataType))
	if err != nil {
		return fmt.Errorf("mint job passport: %w", err)
	}

	job := orchestration.NewJob(jobPassport.JobID, project, fmt.Sprintf("%s acquisition", dataType), cfg.Storefront.StartPage, 3)

	cycle := controller.NewCycle(
		stageConfig(cfg.Controller.Baseline),
		stageConfig(cfg.Controller.RateExplore),
		stageConfig(cfg.Controller.ConcurrencyExplore),
		stageConfig(cfg.Controller.Exploit),
	)
	history := control.NewHistory(cfg.Controller.HistorySize)

	sessionIdentity := session.Identity{ProjectID: jobPassport.ProjectID, JobID: jobPassport.JobID, DataType: string(dataType)}
	sessionCfg := session.Config{
		Timeout:             cfg.Session.Timeout,
		SessionRequestLimit: cfg.Session.SessionRequestLimit,
		Retries:             cfg.Session.Retries,
		InitialConcurrency:  cfg.Session.Concurrency,
		TrustEnv:            cfg.Session.TrustEnv,
		RaiseForStatus:      cfg.Session.RaiseForStatus,
		ProxyURL:            cfg.Session.ProxyURL,
	}
	asyncSession, err := session.New(sessionCfg, cycle.Controller, history, pool, errorSink, sessionIdentity)
	if err != nil {
		return fmt.Errorf("build session: %w", err)
	}

	reqGen := acqrequest.New(acqrequest.Config{
		Context:     ctx,
		BaseURL:     baseURL,
		Params:      params,
		MaxRequests: cfg.Storefront.MaxRequests,
		BatchSize:   cfg.Storefront.BatchSize,
		StartPage:   cfg.Storefront.StartPage,
		Limit:       cfg.Storefront.Limit,
		Headers:     pool,
	})

	if err := job.Start(); err != nil {
		return fmt.Errorf("start job: %w", err)
	}

	for {
		batch, ok := reqGen.Next()
		if !ok {
			break
		}

		taskPassport, err := identity.NewTaskPassport(gen, jobPassport)
		if err != nil {
			_ = job.Fail()
			return fmt.Errorf("mint task passport: %w", err)
		}
		opPassport, err := identity.NewOperationPassport(gen, taskPassport, "task")
		if err != nil {
			_ = job.Fail()
			return fmt.Errorf("mint operation passport: %w", err)
		}

		extractStage := pipeline.NewExtractStage(asyncSession)
		decorated := monitor.NewDecorator(extractStage, dbClient, monitor.Identity{
			ProjectID: jobPassport.ProjectID,
			JobID:     jobPassport.JobID,
			TaskID:    taskPassport.TaskID,
		}, "extract")

		transformStage := pipeline.NewTransformStage(dataType, appID, gen, opPassport, errorSink, pipeline.Identity{
			ProjectID: jobPassport.ProjectID,
			JobID:     jobPassport.JobID,
			TaskID:    taskPassport.TaskID,
		})
		loadStage := pipeline.NewLoadStage(dbClient)

		task := orchestration.NewTask(taskPassport.TaskID, decorated, transformStage, loadStage, batch)
		job.AddTask(task)

		t, _ := job.Next()
		result, err := t.Execute(ctx)
		if err != nil {
			_ = job.Fail()
			slog.Error("task failed", "job_id", job.JobID, "task_id", taskPassport.TaskID, "error", err)
			return fmt.Errorf("job %s: %w", job.JobID, err)
		}

		if err := job.UpdateProgress(reqGen.Bookmark() - 1); err != nil {
			return fmt.Errorf("update job progress: %w", err)
		}
		slog.Info("task completed", "job_id", job.JobID, "task_id", taskPassport.TaskID,
			"inserted", result.Inserted, "updated", result.Updated)
	}

	return job.Complete()
}
