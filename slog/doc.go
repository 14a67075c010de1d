// Package slog provides logging decorators for wetclean services.
package slog
