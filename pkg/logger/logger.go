package logger

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	FilePath    string
	ServiceName string
}

// NewLogger builds a JSON logger writing to every sink plus stderr. Unknown levels fall
// back to info.
func NewLogger(logLevel string, sinks ...zapcore.WriteSyncer) *zap.Logger {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zap.InfoLevel
	}

	writers := append([]zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}, sinks...)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encodeConfig), zapcore.NewMultiWriteSyncer(writers...), level)
	return zap.New(core, zap.AddCaller())
}

// Setup creates the file-backed service logger used by the binaries.
func Setup(cfg Config) (*zap.Logger, *ReopenableWriteSyncer, error) {
	fileSyncer, err := NewReopenableWriteSyncer(cfg.FilePath)
	if err != nil {
		return nil, nil, err
	}
	l := NewLogger(cfg.Level, fileSyncer).With(zap.String("service.name", cfg.ServiceName))
	return l, fileSyncer, nil
}

// ReloadOnSignal reopens the log file every time one of the signals arrives (SIGHUP by
// default). It returns a function that stops the watcher.
func ReloadOnSignal(l *zap.Logger, ws *ReopenableWriteSyncer, signals ...os.Signal) func() {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGHUP}
	}
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, signals...)
	go func() {
		for {
			select {
			case <-c:
				l.Info("received log reload signal, reopening log file")
				if e := ws.Reload(); e != nil {
					l.Error("failed to reload log file", zap.Error(e))
				} else {
					l.Info("successfully reloaded log file")
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(c)
		close(done)
	}
}
