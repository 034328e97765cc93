// Package config provides configuration loading, merging, and validation
// facilities for the bootstrap orchestrator, plus the resolver that turns the
// raw DATABASE_URL / POSTGRES_* inputs into an immutable connection
// descriptor.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources override later ones):
//  1. Environment variables
//  2. Command-line flags
//  3. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for loading the merged
// configuration and [Resolve] for deriving the connection descriptor.
package config
