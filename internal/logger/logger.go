// Package logger configures the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

// New builds a logger appropriate for the given environment: JSON output at
// info level in production, console output at debug level otherwise.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
