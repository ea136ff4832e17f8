// Package config loads, validates, and normalizes the TOML configuration
// shared by the indexer CLI and the lookup server.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/signdex/config.toml, then a project-local signdex.toml. Missing
// files fall back to defaults so the CLI works out of the box.
package config
