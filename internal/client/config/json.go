package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/roster/internal/flagx"
	"github.com/dmitrijs2005/roster/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	Backend             string         `json:"backend"`
	DatabasePath        string         `json:"database_path"`
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CallTimeout         timex.Duration `json:"call_timeout"`
	LogLevel            string         `json:"log_level"`
	Timezone            string         `json:"timezone"`
	ExportDir           string         `json:"export_dir"`
	S3                  struct {
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		Bucket    string `json:"bucket"`
		Prefix    string `json:"prefix"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"s3"`
}

// parseJson overlays Config with values from the file named by -c/-config.
// Without the flag nothing happens. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigSourceFlags().JSON
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.applyTo(cfg)
}

func (jc *JsonConfig) applyTo(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDur := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	set(&cfg.Backend, jc.Backend)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.Timezone, jc.Timezone)
	set(&cfg.ExportDir, jc.ExportDir)
	setDur(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDur(&cfg.CallTimeout, jc.CallTimeout)

	set(&cfg.S3.Region, jc.S3.Region)
	set(&cfg.S3.Endpoint, jc.S3.Endpoint)
	set(&cfg.S3.Bucket, jc.S3.Bucket)
	set(&cfg.S3.Prefix, jc.S3.Prefix)
	set(&cfg.S3.AccessKey, jc.S3.AccessKey)
	set(&cfg.S3.SecretKey, jc.S3.SecretKey)
}
