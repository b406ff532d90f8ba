// Package constants centralizes API paths, defaults, and static errors
// shared between the client and the CLI.
package constants

// API paths.
const (
	// APIPathSamples is the sample submission and listing endpoint.
	APIPathSamples = "/v0/samples"

	// APIPathProfiles is the profile management endpoint.
	APIPathProfiles = "/v0/profiles"

	// APIPathSearch is the sample search endpoint.
	APIPathSearch = "/v0/search"
)

// Defaults.
const (
	// DefaultRootURL is the public Triage API endpoint.
	DefaultRootURL = "https://api.tria.ge"

	// DefaultMaxResults is the default cap on paginated listings.
	DefaultMaxResults = 20
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for the token file.
	ConfigFilePerm = 0600
)

// Output formats supported by the CLI.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)
