// Package logging builds the slog loggers used across signdex: a
// human-oriented console handler for interactive use and a JSON handler for
// machine consumption, selected by configuration.
package logging
