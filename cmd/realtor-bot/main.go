package main

import (
	"log"

	"github.com/futig/realtor-bot/internal/builder"
)

func main() {
	app, err := builder.BuildTelegramBot()
	if err != nil {
		log.Fatal("Failed to build telegram bot:", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Telegram bot error:", err)
	}
}
