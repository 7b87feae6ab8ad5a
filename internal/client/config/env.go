package config

import (
	"github.com/dmitrijs2005/roster/internal/envx"
	"github.com/dmitrijs2005/roster/internal/flagx"
)

// parseEnv overlays Config with ROSTER_* variables. The dotenv file comes
// from -env, falling back to ./.env. Panics on unreadable files or bad
// durations.
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
	src.String("ROSTER_BACKEND", &cfg.Backend)
	src.String("ROSTER_DB_PATH", &cfg.DatabasePath)
	src.String("ROSTER_SERVER_ADDR", &cfg.ServerEndpointAddr)
	src.String("ROSTER_LOG_LEVEL", &cfg.LogLevel)
	src.String("ROSTER_TIMEZONE", &cfg.Timezone)
	src.String("ROSTER_EXPORT_DIR", &cfg.ExportDir)

	src.String("ROSTER_S3_REGION", &cfg.S3.Region)
	src.String("ROSTER_S3_ENDPOINT", &cfg.S3.Endpoint)
	src.String("ROSTER_S3_BUCKET", &cfg.S3.Bucket)
	src.String("ROSTER_S3_PREFIX", &cfg.S3.Prefix)
	src.String("ROSTER_S3_ACCESS_KEY", &cfg.S3.AccessKey)
	src.String("ROSTER_S3_SECRET_KEY", &cfg.S3.SecretKey)

	if err := src.Duration("ROSTER_ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval); err != nil {
		return err
	}
	return src.Duration("ROSTER_CALL_TIMEOUT", &cfg.CallTimeout)
}
