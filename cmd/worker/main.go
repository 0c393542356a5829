package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"jewelstore-backend/pkg/container"
	"jewelstore-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Worker] Failed to initialize container: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	cfg := loadWorkerConfig(c)
	handlers := newHandlerRegistry(c)

	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Worker] Shutting down...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Worker] Stopped")
}
