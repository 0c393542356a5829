package main

import (
	"log"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/shared"
)

type asynqScheduler struct {
	*asynq.Scheduler
}

// setupScheduler registers the recurring sweeps: auto-delivery of
// overdue shipments and expired-cart cleanup.
func setupScheduler(cfg *workerConfig) *asynqScheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		nil,
	)

	entries := []struct {
		spec  string
		task  *asynq.Task
		queue string
	}{
		{cfg.AutoDeliverSpec, asynq.NewTask(shared.TypeAutoDeliverOrders, nil), shared.QueueDefault},
		{cfg.CartCleanupSpec, asynq.NewTask(shared.TypeCleanupExpiredCarts, nil), shared.QueueLow},
	}

	for _, e := range entries {
		if _, err := scheduler.Register(e.spec, e.task, asynq.Queue(e.queue)); err != nil {
			log.Fatalf("[Scheduler] Failed to register %s: %v", e.task.Type(), err)
		}
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Stopping...")
	s.Scheduler.Shutdown()
}
