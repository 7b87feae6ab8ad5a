package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/roster/internal/buildinfo"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/server"
	"github.com/dmitrijs2005/roster/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
