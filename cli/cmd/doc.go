// Package cmd implements the lambdex subcommands.
//
// Each command reads one tree document (YAML or JSON, see [lang.Decode]) from
// a file or standard input and writes its result to [Streams.Out].
package cmd

const (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file path.
	ConfigIdentifier = "config"
)
