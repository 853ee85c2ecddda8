package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"compliance-review-be/internal/bootstrap"
	"compliance-review-be/internal/config"
	"compliance-review-be/internal/server"
	"compliance-review-be/internal/tracer"
	"compliance-review-be/pkg/database"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx)

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional, backs the audit trail)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg)
	srv := server.New(cfg, container)

	// 4. Run everything until a signal arrives or one part fails
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return container.WebSocketHub.Run(gctx) })
	g.Go(func() error { return container.EventService.Run(gctx) })
	g.Go(func() error { return container.ConsumerService.Consume(gctx) })
	if container.AuditService != nil {
		g.Go(func() error { return container.AuditService.Consume(gctx) })
	}
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	container.Close()

	tracerCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if terr := shutdownTracer(tracerCtx); terr != nil {
		log.Printf("Tracer shutdown error: %v", terr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Println("Server stopped")
}
