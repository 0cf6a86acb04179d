package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dept-service/internal/app"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	log.SetOutput(os.Stderr)

	service, err := app.NewService()
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- service.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start service: %v", err)
		}
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), service.ShutdownTimeout())
		defer cancel()

		if err := service.Shutdown(ctx); err != nil {
			log.Fatalf("Failed to shut down cleanly: %v", err)
		}
	}
}
