package ctest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that routes records through t.Log,
// so output is captured per-test and only shown on failure.
func NewLogger(t *testing.T) *slog.Logger {
	return slogt.New(t)
}
