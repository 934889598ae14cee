package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var logger *slog.Logger
var out io.Writer = os.Stderr

// InitWriter configures the process wide logger to write to w. Verbose
// enables debug output, json switches from the colored console handler to
// slog's JSON handler.
func InitWriter(w io.Writer, verbose bool, json bool) {
	out = w
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if json {
		logger = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		)
	} else {
		logger = slog.New(
			tint.NewHandler(w, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			}))
	}
	slog.SetDefault(logger)
}

func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

type summaryStatement struct {
	level slog.Level
	msg   string
	args  []any
}

var summary = []summaryStatement{}

// AddSummaryError queues a message that is repeated in the block printed by Close.
func AddSummaryError(msg string, args ...any) {
	summary = append(summary, summaryStatement{slog.LevelError, msg, args})
}

func AddSummaryWarn(msg string, args ...any) {
	summary = append(summary, summaryStatement{slog.LevelWarn, msg, args})
}

// Close flushes the summary block. It prints nothing when no statements were queued.
func Close() {
	if len(summary) == 0 {
		return
	}
	line := []byte("------------\n")

	out.Write(line)
	for _, i := range summary {
		logger.Log(context.TODO(), i.level, i.msg, i.args...)
	}
	out.Write(line)
	summary = summary[:0]
}

func init() {
	InitWriter(os.Stderr, false, false)
}
