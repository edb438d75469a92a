// Package config provides configuration management for the governance
// server.
//
// Configuration is loaded from an optional YAML file merged with GOV_*
// environment variables; environment takes precedence, and the source of
// every attribute (default, file or environment) is tracked for the
// configuration display command.
//
// The policy constants of the engines live here: risk factor weights and
// level thresholds, violation severity weights, compliance status
// thresholds, the trend dead-band and the reporting period. They are
// policy, not architecture, and may be hot-reloaded via Watch.
//
// # Key Configuration Options
//
//   - GOV_CONFIG_PATH: Directory containing accessgov.yml
//   - DATABASE_URL: Database connection
//   - GOV_SESSION_KEY: HMAC key for bearer token verification
//   - GOV_LOG_LEVEL: Logging verbosity
//   - BIND_ADDRESS / PORT: Server listen address
package config
