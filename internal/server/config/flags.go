package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/roster/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address; "" disables /metrics
//	-d string   PostgreSQL DSN
//	-l string   log level
func parseFlags(config *Config) {
	if err := applyFlags(config, flagx.FilterArgs(os.Args[1:], serverFlags)); err != nil {
		panic(err)
	}
}

func applyFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port for /metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
