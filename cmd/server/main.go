package main

import (
	"context"
	"log"

	"github.com/akorchagin/authgate/internal/server"
	"github.com/akorchagin/authgate/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		// Unrecoverable startup condition: never begin serving traffic.
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
