package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Validator settings.
	SchemaFile        string
	MaxSchemaErrors   int
	MaxEntriesPerRule int
	RuleConfigFile    string

	// Output limits.
	EntryLimit    int
	MaxLimit      int
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from NETEXVAL_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		SchemaFile:        os.Getenv("NETEXVAL_SCHEMA"),
		MaxSchemaErrors:   envInt("NETEXVAL_MAX_SCHEMA_ERRORS", 100),
		MaxEntriesPerRule: envInt("NETEXVAL_MAX_ENTRIES_PER_RULE", 100),
		RuleConfigFile:    os.Getenv("NETEXVAL_RULE_CONFIG"),
		EntryLimit:        envInt("NETEXVAL_ENTRY_LIMIT", 100),
		MaxLimit:          envInt("NETEXVAL_MAX_LIMIT", 1000),
		MaxInlineSize:     envInt64("NETEXVAL_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}
