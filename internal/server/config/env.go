package config

import (
	"github.com/dmitrijs2005/roster/internal/envx"
	"github.com/dmitrijs2005/roster/internal/flagx"
)

// parseEnv overlays Config with ROSTER_SERVER_* variables. Panics on an
// unreadable dotenv file or a malformed duration.
func parseEnv(cfg *Config) {
	src, err := envx.Load(flagx.ConfigSourceFlags().Env)
	if err != nil {
		panic(err)
	}
	if err := applyEnv(cfg, src); err != nil {
		panic(err)
	}
}

func applyEnv(cfg *Config, src *envx.Source) error {
	src.String("ROSTER_SERVER_GRPC_ADDR", &cfg.EndpointAddrGRPC)
	src.String("ROSTER_SERVER_METRICS_ADDR", &cfg.MetricsAddr)
	src.String("ROSTER_SERVER_DATABASE_DSN", &cfg.DatabaseDSN)
	src.String("ROSTER_SERVER_LOG_LEVEL", &cfg.LogLevel)
	return src.Duration("ROSTER_SERVER_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
}
