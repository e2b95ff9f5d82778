package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Gifford23/youth-xtreme-checkin/internal/app"
	"github.com/Gifford23/youth-xtreme-checkin/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment variables")
	}

	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
