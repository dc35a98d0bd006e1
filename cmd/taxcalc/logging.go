package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taxwizard/tax-estimator/internal/calculation"
)

var _ calculation.Logger = (*zap.SugaredLogger)(nil)

// newLogger builds the CLI logger. --verbose selects a human readable development logger
// at debug level; otherwise JSON lines at warn level go to stderr. TAXCALC_LOG_LEVEL
// overrides the level in both cases.
func newLogger(cmd *cobra.Command) (*zap.SugaredLogger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	if lvl := strings.TrimSpace(os.Getenv(envLogLevel)); lvl != "" {
		level, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
		config.Level = level
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
