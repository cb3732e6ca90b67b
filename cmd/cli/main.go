package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lynkc/internal/buildinfo"
	"github.com/dmitrijs2005/lynkc/internal/client/cli"
	"github.com/dmitrijs2005/lynkc/internal/client/config"
	"github.com/dmitrijs2005/lynkc/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewZapLogger("development")
	defer logger.Sync()

	app, err := cli.NewApp(cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
