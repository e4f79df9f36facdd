package main

import (
	"context"
	"os"

	"github.com/akorchagin/authgate/internal/buildinfo"
	"github.com/akorchagin/authgate/internal/client/cli"
	"github.com/akorchagin/authgate/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
