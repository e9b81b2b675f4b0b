package env

const AppName = "sniff"

// Set at build time through -ldflags "-X github.com/ostafen/sniff/internal/env.Version=...".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
