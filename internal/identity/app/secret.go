package app

import (
	"log/slog"

	"github.com/samber/oops"

	"github.com/aussiebroadwan/usermgmt/pkg/cryptox"
)

// ResolveSecret returns the token signing secret. Outside prod a missing
// SECRET_KEY is replaced by a random per-process secret, so tokens stop
// verifying after a restart.
func ResolveSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.SecretKey == "" {
		if cfg.Env == EnvProd {
			return nil, oops.Code("CONFIG_INVALID").
				With("key", "secret_key").
				Errorf("SECRET_KEY is required when ENV=%s", EnvProd)
		}

		secret, err := cryptox.GenerateSecret(cryptox.SecretSize)
		if err != nil {
			return nil, oops.Code("SECRET_GENERATE_FAILED").Wrap(err)
		}
		logger.Warn("SECRET_KEY not set, using an ephemeral signing secret; tokens will not survive a restart",
			"env", cfg.Env,
		)
		return secret, nil
	}

	if len(cfg.SecretKey) < cryptox.SecretSize {
		logger.Warn("SECRET_KEY is shorter than recommended",
			"bytes", len(cfg.SecretKey),
			"recommended", cryptox.SecretSize,
		)
	}
	return []byte(cfg.SecretKey), nil
}
