package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN
//	-mode run mode (development|production)
//	-log-level log level passed to the server and used by the orchestrator
//	-migration-policy migration failure policy (strict|lenient)
//	-migration-retry-delay pause before the single migration retry (e.g., "5s")
//	-db-wait-attempts data store readiness probe budget
//	-db-wait-interval pause between data store probes (e.g., "1s")
//	-foreground replace the orchestrator with the server process
//	-seed create the bootstrap admin account after launch
//	-server-command server executable
//	-server-app application target passed to the server command
//	-server-host server bind address
//	-server-port server port
//	-server-workers production worker count
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var mode string
	var logLevel string
	var migrationPolicy string
	var migrationRetryDelay time.Duration
	var dbWaitAttempts int
	var dbWaitInterval time.Duration
	var foreground bool
	var seed bool
	var serverCommand string
	var serverApp string
	var serverHost string
	var serverPort int
	var serverWorkers int

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&mode, "mode", "", "Run mode (development|production)")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.StringVar(&migrationPolicy, "migration-policy", "", "Migration failure policy (strict|lenient)")
	flag.DurationVar(&migrationRetryDelay, "migration-retry-delay", 0, "Migration retry delay (e.g., 5s)")
	flag.IntVar(&dbWaitAttempts, "db-wait-attempts", 0, "Data store readiness attempts")
	flag.DurationVar(&dbWaitInterval, "db-wait-interval", 0, "Data store readiness interval (e.g., 1s)")
	flag.BoolVar(&foreground, "foreground", false, "Replace the orchestrator with the server process")
	flag.BoolVar(&seed, "seed", false, "Create the bootstrap admin account after launch")
	flag.StringVar(&serverCommand, "server-command", "", "Server executable")
	flag.StringVar(&serverApp, "server-app", "", "Application target for the server command")
	flag.StringVar(&serverHost, "server-host", "", "Server bind address")
	flag.IntVar(&serverPort, "server-port", 0, "Server port")
	flag.IntVar(&serverWorkers, "server-workers", 0, "Production worker count")

	flag.Parse()

	return &StructuredConfig{
		Database: Database{
			URL: databaseDSN,
		},
		Runtime: Runtime{
			Mode:     RunMode(mode),
			LogLevel: logLevel,
		},
		Server: Server{
			Command:    serverCommand,
			App:        serverApp,
			Host:       serverHost,
			Port:       serverPort,
			Workers:    serverWorkers,
			Foreground: foreground,
		},
		Migrations: Migrations{
			Policy:     MigrationPolicy(migrationPolicy),
			RetryDelay: migrationRetryDelay,
		},
		Readiness: Readiness{
			MaxAttempts: dbWaitAttempts,
			Interval:    dbWaitInterval,
		},
		Seed: Seed{
			Enabled: seed,
		},
	}
}
