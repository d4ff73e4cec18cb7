package main

import (
	"net/http"

	"github.com/deciflow/deciflow/internal/config"
	"github.com/deciflow/deciflow/internal/logger"
	"github.com/deciflow/deciflow/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	r, err := router.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("backend", cfg.BackendURL).
		Msg("deciflow web client listening")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
