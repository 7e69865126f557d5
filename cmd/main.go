package main

import (
	"log"

	"github.com/AhmedAli-29SE/nutrifresh-server/config"
	"github.com/AhmedAli-29SE/nutrifresh-server/routes"
)

func main() {
	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.Close(db)

	r := routes.SetupRouter(db, cfg)

	log.Printf("server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
