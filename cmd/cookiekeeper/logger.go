package main

import (
	"go.uber.org/zap"

	"github.com/lunafish/cookiekeeper"
)

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Info(format string, args ...interface{})    { l.s.Infof(format, args...) }
func (l zapLogger) Warning(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l zapLogger) Error(format string, args ...interface{})   { l.s.Errorf(format, args...) }

// newLogger builds the zap-backed Logger the library reports best-effort
// failures through. The returned func flushes buffered entries.
func newLogger(verbose bool) (cookiekeeper.Logger, func()) {
	var zl *zap.Logger
	var err error
	if verbose {
		zl, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		zl, err = cfg.Build()
	}
	if err != nil {
		return cookiekeeper.NopLogger(), func() {}
	}
	return zapLogger{zl.Sugar()}, func() { _ = zl.Sync() }
}
