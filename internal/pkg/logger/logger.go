package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envProduction = "production"

// DefaultService は Init 前に使われるサービス名
const DefaultService = "event-api"

var log *zap.Logger

func init() {
	log = NewLogger(Options{Env: "development", Service: DefaultService})
}

// Options はロガーの生成設定
type Options struct {
	Env     string // production なら JSON 出力
	Service string // 全ログに付く service フィールド。空なら付けない
	Level   string // debug / info / warn / error。空または不正なら環境の既定値
}

// NewLogger は Options に応じた zap.Logger を作成する
func NewLogger(opts Options) *zap.Logger {
	l, err := newConfig(opts).Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newConfig(opts Options) zap.Config {
	var config zap.Config
	if opts.Env == envProduction {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if opts.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(opts.Level)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}
	if opts.Service != "" {
		config.InitialFields = map[string]any{"service": opts.Service}
	}
	return config
}

// Init はパッケージ共通のロガーを作り直す
func Init(opts Options) *zap.Logger {
	Set(NewLogger(opts))
	return log
}

func Get() *zap.Logger {
	return log
}

func Set(l *zap.Logger) {
	log = l
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return log.With(fields...)
}

func Sync() error {
	return log.Sync()
}
