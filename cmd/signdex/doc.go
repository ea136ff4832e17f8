// Package main hosts the signdex CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into index
// builds, gloss lookups, the HTTP lookup API, build-history inspection, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
package main
