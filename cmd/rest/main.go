package main

import (
	"context"
	"log"

	"storeboost/internal/bootstrap"
	"storeboost/internal/config"
	"storeboost/internal/server"
	"storeboost/internal/tracer"
	"storeboost/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	app := bootstrap.New(gormDB, cfg)
	defer app.Close()

	if err := app.Boot(context.Background()); err != nil {
		log.Panicf("Boot failed: %v", err)
	}

	srv := server.New(cfg, app)
	log.Fatal(srv.Run())
}
