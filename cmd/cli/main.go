package main

import (
	"context"
	"log"

	"github.com/antonk9218/authd/internal/client/cli"
	"github.com/antonk9218/authd/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
