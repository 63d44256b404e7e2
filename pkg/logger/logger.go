package logger

// Logger is the subset of *zap.SugaredLogger the build stages depend on.
type Logger interface {
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Warnf(template string, args ...interface{})
}
