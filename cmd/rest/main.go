package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jarvina-be/internal/bootstrap"
	"jarvina-be/internal/config"
	"jarvina-be/internal/model"
	"jarvina-be/internal/pkg/logger"
	"jarvina-be/internal/server"
	"jarvina-be/internal/tracer"
	"jarvina-be/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	// SQLite files are created on first run; postgres goes through cmd/migrate.
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.Migrate(gormDB, model.All()...); err != nil {
			log.Panicf("Unable to migrate database: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)
	defer container.Close()

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("EVENTS", "Failed to start event consumer", map[string]interface{}{"error": err.Error()})
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
