package main

import (
	"flag"

	"github.com/danmuck/tuioctl/internal/config"
	"github.com/danmuck/tuioctl/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	kind := flag.String("kind", "tuioctl", "config kind: tuioctl|admin")
	output := flag.String("output", "cmd/tuioctl/config.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "cmd/tuioctl/config.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal().Err(err).Str("path", *input).Msg("configgen validate failed")
		}
		log.Info().
			Str("path", *input).
			Int("port", cfg.Port).
			Bool("admin", cfg.AdminEnabled()).
			Msg("configgen validated config")
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal().Err(err).Str("kind", *kind).Msg("configgen write failed")
	}
	log.Info().Str("kind", *kind).Str("path", *output).Msg("configgen wrote config template")
}
