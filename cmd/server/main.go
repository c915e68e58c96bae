package main

import (
	"context"

	"github.com/dmitrijs2005/userfed/internal/server"
	"github.com/dmitrijs2005/userfed/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()
	app := server.NewApp(cfg)
	app.Run(context.Background())
}
