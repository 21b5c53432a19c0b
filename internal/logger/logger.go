package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log est le logger global, no-op tant que Initialize n'a pas été appelé
var Log = zap.NewNop()

// Initialize configure le logger selon l'environnement
func Initialize(env string) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := config.Build()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	Log = l
}

// Named retourne un sous-logger pour un composant
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync vide les buffers du logger
func Sync() {
	_ = Log.Sync()
}
