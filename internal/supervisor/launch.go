package supervisor

import (
	"strconv"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
)

// LaunchArgs builds the mode-dependent argument list for the server command.
//
// Development enables auto-reload so code changes restart the app inside the
// container. Production runs a fixed worker count and trusts proxy headers,
// since the server always sits behind the reverse proxy there.
func LaunchArgs(cfg config.Server, mode config.RunMode, logLevel string) []string {
	args := []string{
		cfg.App,
		"--host", cfg.Host,
		"--port", strconv.Itoa(cfg.Port),
	}

	if mode == config.Development {
		return append(args,
			"--reload",
			"--log-level", logLevel,
		)
	}

	return append(args,
		"--workers", strconv.Itoa(cfg.Workers),
		"--proxy-headers",
		"--forwarded-allow-ips", "*",
		"--log-level", logLevel,
	)
}
