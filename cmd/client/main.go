package main

import (
	"os"
	"todoapp/config"
	"todoapp/internal/client"
	"todoapp/internal/tui"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	// Keep log noise out of the interactive screen.
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	remote := client.NewRemote(cfg)
	offline := client.NewOffline(cfg)
	api := client.NewFallback(remote, offline)

	if err := tui.Run(api); err != nil {
		log.Error().Err(err).Msg("Terminal session ended with an error")
		os.Exit(1)
	}
}
