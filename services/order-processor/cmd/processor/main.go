// Command order-processor is the external calculator the shop API shells
// out to:
//
//	order-processor calculate '<order json>'
//	order-processor validate  '<order json>'
//
// The result is one JSON document on stdout. Usage problems go to stderr
// with exit code 1; order problems are reported on stdout as
// {"success": false, "error": "..."} with exit code 1.
package main

import (
	"encoding/json"
	"io"
	"os"

	env "github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"purem-oda-shop/services/order-processor/internal/pricing"
	"purem-oda-shop/shared/pkg/logger"
	"purem-oda-shop/shared/pkg/models"
)

type processorConfig struct {
	LogLevel string `env:"PROCESSOR_LOG_LEVEL" envDefault:"warn"`
}

func main() {
	var cfg processorConfig
	_ = env.Parse(&cfg)
	log := logger.NewWriter(os.Stderr, "order-processor", cfg.LogLevel)

	os.Exit(run(os.Args[1:], os.Stdout, log))
}

func run(args []string, stdout io.Writer, log zerolog.Logger) int {
	if len(args) == 0 {
		log.Error().Msg("Usage: order-processor <command>")
		return 1
	}

	command := args[0]
	switch command {
	case "calculate", "validate":
	default:
		log.Error().Str("command", command).Msg("Unknown command: " + command)
		return 1
	}
	if len(args) < 2 {
		log.Error().Msg("Usage: order-processor " + command + " <json_string>")
		return 1
	}

	order, err := pricing.Decode([]byte(args[1]))
	if err != nil {
		return fail(stdout, log, command, err)
	}

	var result any
	switch command {
	case "calculate":
		result, err = pricing.Calculate(order)
	case "validate":
		result, err = pricing.Validate(order)
	}
	if err != nil {
		return fail(stdout, log, command, err)
	}

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		log.Error().Err(err).Msg("write result failed")
		return 1
	}
	log.Debug().Str("command", command).Msg("done")
	return 0
}

func fail(stdout io.Writer, log zerolog.Logger, command string, err error) int {
	log.Debug().Err(err).Str("command", command).Msg("order rejected")
	_ = json.NewEncoder(stdout).Encode(models.ProcessorFailure{Success: false, Error: err.Error()})
	return 1
}
