package main

import (
	"github.com/petuniaboards/storefront/internal/infrastructure/config"
	"github.com/petuniaboards/storefront/internal/mockapi"
	"github.com/petuniaboards/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "mockapi",
		Pretty:  cfg.LogPretty,
	})

	e := mockapi.NewServer(mockapi.Config{
		JWTSecret: cfg.MockAPI.JWTSecret,
		Seed:      true,
	}, log)

	log.Info().Str("port", cfg.MockAPI.Port).Msg("mockapi listening")
	if err := e.Start(":" + cfg.MockAPI.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
