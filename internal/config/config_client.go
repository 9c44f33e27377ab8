package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// defaultClientRequestTimeout bounds client requests when no timeout is
// configured.
const defaultClientRequestTimeout = 10 * time.Second

// ClientConfig is the configuration of the admin client.
type ClientConfig struct {
	// Adapter contains the server address and the request timeout.
	Adapter Adapter

	// LogLevel restricts client log output.
	LogLevel string
}

// GetClientConfig builds and validates the admin client configuration.
//
// Environment variables (ADAPTER_ADDRESS, ADAPTER_REQUEST_TIMEOUT,
// APP_LOG_LEVEL, CONFIG) are read first, then the global client flags are
// parsed from args:
//
//	-a server address ([scheme://]host:port)
//	-t request timeout
//	-c/-config json file path with configs
//	-log-level log level
//
// The returned slice holds the arguments that follow the flags, i.e. the
// subcommand and its own arguments.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	configs := []*StructuredConfig{envCfg, flagCfg}

	jsonPath := envCfg.JSONFilePath
	if flagCfg.JSONFilePath != "" {
		jsonPath = flagCfg.JSONFilePath
	}
	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			return nil, nil, err
		}
		configs = append(configs, jsonCfg)
	}

	merged := new(StructuredConfig)
	for _, cfg := range configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	clientCfg := &ClientConfig{
		Adapter:  merged.Adapter,
		LogLevel: merged.App.LogLevel,
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultClientRequestTimeout
	}

	if err := clientCfg.validate(); err != nil {
		return nil, nil, err
	}

	return clientCfg, rest, nil
}

func parseClientFlags(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	var address string
	var timeout time.Duration
	var jsonConfigPath string
	var logLevel string

	fs.StringVar(&address, "a", "", "Server address [scheme://]host:port")
	fs.DurationVar(&timeout, "t", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	return &StructuredConfig{
		App:          App{LogLevel: logLevel},
		Adapter:      Adapter{HTTPAddress: address, RequestTimeout: timeout},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
