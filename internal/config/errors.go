package config

import "errors"

// Configuration errors. All of them are fatal: the orchestrator must abort
// before any network call when the configuration cannot be resolved.
var (
	// ErrMissingDSN indicates that no connection string was provided and the
	// discrete POSTGRES_* overrides do not cover every field either.
	ErrMissingDSN = errors.New("missing connection string")

	// ErrMalformedDSN indicates a connection string that does not match the
	// expected URL shape. Resolution fails closed instead of continuing with
	// partially populated fields.
	ErrMalformedDSN = errors.New("malformed connection string")

	// ErrIncompleteDescriptor indicates that a field of the resolved
	// connection descriptor is still empty after overrides were applied.
	ErrIncompleteDescriptor = errors.New("incomplete connection descriptor")

	// ErrInvalidRunMode indicates an ENVIRONMENT value outside
	// development/production.
	ErrInvalidRunMode = errors.New("invalid run mode")

	// ErrInvalidMigrationPolicy indicates a MIGRATION_POLICY value outside
	// strict/lenient.
	ErrInvalidMigrationPolicy = errors.New("invalid migration failure policy")

	// ErrInvalidServerConfigs indicates invalid server launch settings
	// (for example, an empty command or an out-of-range port).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrInvalidRetryConfigs indicates a retry budget that cannot be
	// executed (for example, zero attempts or a negative interval).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")

	// ErrSeedRequiresBackground indicates that seeding was requested
	// together with the foreground launch discipline. A foreground exec
	// leaves no orchestrator behind to run the seeding task.
	ErrSeedRequiresBackground = errors.New("seeding requires background launch discipline")
)
