package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"dragondrop/internal/app/server"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	decimal.MarshalJSONWithoutQuotes = true

	server.Run()
}
