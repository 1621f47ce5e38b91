package logger

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thereayou/chatrooms/internal/config"
)

const (
	BackendStd = "std"
	BackendZap = "zap"
)

// New builds the process logger and installs it as the slog default.
func New(cfg config.Log) *slog.Logger {
	lvl := cfg.SlogLevel()

	var h slog.Handler
	switch cfg.Backend {
	case BackendStd:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		h = newZapHandler(lvl)
	}

	l := slog.New(h).With(
		slog.String("service", cfg.Service),
		slog.String("env", cfg.Env),
		slog.String("instance_id", instanceID()),
	)
	slog.SetDefault(l)
	return l
}

func newZapHandler(lvl slog.Level) slog.Handler {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(os.Stdout),
		toZapLevel(lvl),
	)
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return slogzap.Option{Level: lvl, Logger: z}.NewZapHandler()
}

func toZapLevel(lvl slog.Level) zapcore.Level {
	switch {
	case lvl <= slog.LevelDebug:
		return zapcore.DebugLevel
	case lvl == slog.LevelInfo:
		return zapcore.InfoLevel
	case lvl == slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func instanceID() string {
	hn, _ := os.Hostname()
	return hn + "-" + uuid.NewString()[:8]
}
