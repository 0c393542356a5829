package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/shared"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *workerConfig, handlers *handlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.register(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueDefault:  3,
				shared.QueueLow:      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Worker] Task failed - type: %s, error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting task server...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Task server failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Draining in-flight tasks...")
	s.Server.Shutdown()
}
