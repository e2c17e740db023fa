package jobs

import (
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// cronLogger adapts logrus to the cron.Logger interface.
type cronLogger struct {
	entry *log.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.entry.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []any) log.Fields {
	f := make(log.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			f[key] = keysAndValues[i+1]
		}
	}
	return f
}

// newCron returns a scheduler with a seconds field that recovers panics in
// jobs and skips a run while the previous one is still in progress.
func newCron(logger *log.Entry) *cron.Cron {
	l := cronLogger{entry: logger}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
}

func componentLogger(logger *log.Entry, component string) *log.Entry {
	if logger == nil {
		return log.WithField("component", component)
	}
	return logger.WithField("component", component)
}
