package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tpforum/internal/buildinfo"
	"github.com/dmitrijs2005/tpforum/internal/server"
	"github.com/dmitrijs2005/tpforum/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := server.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
