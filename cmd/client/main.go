package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-user-keeper/internal/adapter"
	"github.com/MKhiriev/go-user-keeper/internal/client"
	"github.com/MKhiriev/go-user-keeper/internal/config"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewCLILogger("go-user-keeper-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, client.Usage)
			return 0
		}
		log.Err(err).Msg("error getting configs")
		return 2
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Err(err).Msg("error setting log level")
		return 2
	}

	users, err := adapter.NewHTTPUserAdapter(cfg.Adapter, log)
	if err != nil {
		log.Err(err).Msg("error creating adapter")
		return 2
	}

	app := client.NewApp(users, os.Stdout, log)
	if err = app.Run(context.Background(), args); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, client.ErrNoCommand), errors.Is(err, client.ErrUnknownCommand), errors.Is(err, client.ErrInvalidFlags):
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, client.Usage)
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
