package main

import (
	"os"

	"github.com/tcp_snm/quest/internal/config"
	"github.com/tcp_snm/quest/internal/database/migrations"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down]")
	}

	direction, err := migrations.ParseDirection(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.ConfigInit()
	if cfg.DBURL == "" {
		log.Fatalf("%s not found in environment", config.KeyDBURL)
	}

	if err := migrations.Run(cfg.DBURL, direction); err != nil {
		log.Fatal(err)
	}
}
