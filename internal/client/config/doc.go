// Package config loads runtime configuration for the EduStream CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: EDU_SERVER_URL, EDU_LOCAL_DB, EDU_REQUEST_TIMEOUT,
//     optionally seeded from a .env file (-env or -E).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-l string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-r int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "local_db_path": "edustream.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
