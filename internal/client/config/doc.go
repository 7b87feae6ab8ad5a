// Package config loads runtime configuration for the roster CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed ROSTER_, optionally backed by a dotenv
//     file (-env path, or ./.env when present).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   backend: "local" (SQLite) or "remote" (gRPC server)
//	-d string   path of the local SQLite database
//	-a string   address:port of the roster gRPC server
//	-i int      online status check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//	-o string   directory for exported and printed files
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "backend": "remote",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "s3": {"bucket": "rosters", "region": "us-east-1"}
//	}
package config
