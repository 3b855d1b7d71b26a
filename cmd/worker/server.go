package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	ingestionservice "catalog-backend/internal/domains/ingestion/service"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/container"
)

// startWorker runs the asynq consumer for queued imports.
func startWorker(app *container.Container) *asynq.Server {
	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeIngestionImport, ingestionservice.NewImportTaskHandler(app.IngestionService))

	cfg := app.Config
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				cfg.Worker.Queue: 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Printf("[Worker] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Printf("[Worker] Starting (concurrency: %d, queue: %s)", cfg.Worker.Concurrency, cfg.Worker.Queue)
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return srv
}
