package main

import (
	"os"
	"strconv"

	"jewelstore-backend/pkg/container"
)

// workerConfig collects everything the worker process needs beyond the
// shared container: queue weights, concurrency, and the cron specs for
// the scheduled sweeps.
type workerConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int

	// Cron specs (asynq scheduler syntax).
	AutoDeliverSpec string
	CartCleanupSpec string
}

func loadWorkerConfig(c *container.Container) *workerConfig {
	return &workerConfig{
		RedisAddr:     c.Config.Redis.Host,
		RedisPassword: c.Config.Redis.Password,
		RedisDB:       c.Config.Redis.DB,
		Concurrency:   envInt("WORKER_CONCURRENCY", 10),

		// Auto-delivery sweeps hourly; cart cleanup runs nightly at 03:30.
		AutoDeliverSpec: envStr("AUTO_DELIVER_CRON", "0 * * * *"),
		CartCleanupSpec: envStr("CART_CLEANUP_CRON", "30 3 * * *"),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
