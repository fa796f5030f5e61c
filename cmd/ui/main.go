package main

import (
	"log"

	"github.com/joho/godotenv"

	"churnmate/internal/config"
	"churnmate/internal/container"
	"churnmate/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatal("Failed to wire application: ", err)
	}

	server, err := ui.NewServer(ui.Deps{
		InsightService: c.InsightService,
		ChatService:    c.ChatService,
		Reader:         c.Reader,
		Usage:          c.UsageService,
		Data:           cfg.Data,
		GinMode:        cfg.Server.GinMode,
	})
	if err != nil {
		log.Fatal("Failed to create server: ", err)
	}

	log.Fatal(server.Start(cfg.Server.Port))
}
