package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Timestamps use a short wall-clock
// format since commands run for seconds, not days.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the duration of a single step at debug level.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(logger *log.Logger) *progress {
	return &progress{logger: logger, start: time.Now()}
}

// done logs the formatted message with the elapsed time appended.
func (p *progress) done(format string, args ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	args = append(args, elapsed)
	p.logger.Debugf(format+" (%s)", args...)
}
