package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures logger construction.
type Options struct {
	Level   string // debug, info, warn, error
	LogFile string // optional JSON file sink, rotated
}

// NewLogger builds the run's logger: a human-readable colorized console
// core, plus an optional structured JSON file core with rotation handled
// by lumberjack.
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stdout),
		level,
	)

	cores := []zapcore.Core{consoleCore}
	if opts.LogFile != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
