package app

import (
	"errors"
	"fmt"

	"github.com/nukigor/ai-voxarena/internal/platform/cache"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
	"github.com/nukigor/ai-voxarena/internal/platform/openai"
)

type Clients struct {
	// Nil when OPENAI_API_KEY is unset; descriptions then use the local template.
	OpenAI openai.Client
	Cache  cache.Cache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients

	ai, err := openai.NewClient(log, cfg.OpenAI)
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey):
		log.Warn("OPENAI_API_KEY not set; persona descriptions use the local template")
	case err != nil:
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	default:
		out.OpenAI = ai
	}

	out.Cache = cache.Nop()
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedis(log, cfg.RedisAddr, "voxarena")
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		out.Cache = c
	}
	return out, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
