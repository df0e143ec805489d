// Package config loads runtime configuration for the forum client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   URL of the auth endpoint
//	-g string   address:port of the server's gRPC health service
//	-i int      online status check interval (seconds)
//	-d string   data directory for the local session database
//	-t int      auth request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "auth_endpoint_url": "https://forum.example/api/auth",
//	  "health_addr": "forum.example:50051",
//	  "online_check_interval": "3s",
//	  "data_dir": "/home/me/.config/tpforum",
//	  "request_timeout": "10s"
//	}
//
// Keys missing from the file keep their previous values.
package config
