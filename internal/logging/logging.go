// Package logging provides the structured logger used by the driver loop
// and CLI. The teacher ships no logging dependency of its own, so this
// ambient concern is grounded instead on how the rest of the retrieved
// pack standardizes on go.uber.org/zap for leveled, structured logging with
// reusable field helpers.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger for either interactive CLI use (human-readable
// console encoding) or production/automated use (JSON encoding), selected
// by development.
func New(development bool) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	return zap.NewProduction()
}

// RunFields returns the base fields every log line for one Solve invocation
// should carry: the run's correlation ID and the grammar it is searching.
func RunFields(runID, grammarName string) []zap.Field {
	return []zap.Field{
		zap.String("run_id", runID),
		zap.String("grammar", grammarName),
	}
}
