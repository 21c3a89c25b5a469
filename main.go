package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"zugzwang/uci"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if path := os.Getenv("ZUGZWANG_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("main: could not open log file, logging to stderr only")
		} else {
			defer f.Close()
			log = zerolog.New(zerolog.MultiLevelWriter(os.Stderr, f)).With().Timestamp().Logger()
		}
	}

	start := time.Now()
	loop := uci.NewLoop(os.Stdout, log)
	log.Info().Dur("init", time.Since(start)).Msg("main: engine ready, entering UCI loop")

	if err := loop.Run(os.Stdin); err != nil {
		log.Error().Err(err).Msg("main: uci loop exited with error")
		os.Exit(1)
	}
}
