package logger

import "go.uber.org/zap"

type ZapLogger struct {
	log *zap.SugaredLogger
}

var zapLogger *ZapLogger

func NewLogger(cfg zap.Config) (*ZapLogger, error) {
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer l.Sync() //nolint
	l = l.WithOptions(zap.AddCallerSkip(2))
	zapLogger = &ZapLogger{log: l.Sugar()}
	return zapLogger, nil
}

func GetLogger() *ZapLogger {
	if zapLogger == nil {
		panic("logger not initialized")
	}
	return zapLogger
}

func (l *ZapLogger) Info(msg string, values ...any)  { l.log.Infow(msg, values...) }
func (l *ZapLogger) Warn(msg string, values ...any)  { l.log.Warnw(msg, values...) }
func (l *ZapLogger) Error(msg string, values ...any) { l.log.Errorw(msg, values...) }
func (l *ZapLogger) Debug(msg string, values ...any) { l.log.Debugw(msg, values...) }
func (l *ZapLogger) Panic(msg string, values ...any) { l.log.Panicw(msg, values...) }

func (l *ZapLogger) Fatal(err error, values ...any) { l.log.Fatalw(err.Error(), values...) }

func (l *ZapLogger) Printf(format string, args ...any) { l.log.Infof(format, args...) }
