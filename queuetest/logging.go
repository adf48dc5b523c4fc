// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queuetest

import (
	"fmt"
	"slices"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger plumbs all levels of a [logging.Logger] into a [LogRecorder].
type logger struct {
	level logging.Level
	rec   *LogRecorder
	with  []zap.Field
	// Methods that aren't overridden will panic, which is preferable to
	// embedding a [logging.NoLog] that would silently drop entries.
	logging.Logger
}

var _ logging.Logger = (*logger)(nil)

func (l *logger) With(fields ...zap.Field) logging.Logger {
	return &logger{
		level: l.level,
		rec:   l.rec,
		with:  slices.Concat(l.with, fields),
	}
}

func (l *logger) log(lvl logging.Level, msg string, fields ...zap.Field) {
	if lvl < l.level {
		return
	}
	l.rec.record(&LogRecord{
		Level:  lvl,
		Msg:    msg,
		Fields: slices.Concat(l.with, fields),
	})
}

func (l *logger) Verbo(msg string, fs ...zap.Field) { l.log(logging.Verbo, msg, fs...) }
func (l *logger) Debug(msg string, fs ...zap.Field) { l.log(logging.Debug, msg, fs...) }
func (l *logger) Trace(msg string, fs ...zap.Field) { l.log(logging.Trace, msg, fs...) }
func (l *logger) Info(msg string, fs ...zap.Field)  { l.log(logging.Info, msg, fs...) }
func (l *logger) Warn(msg string, fs ...zap.Field)  { l.log(logging.Warn, msg, fs...) }
func (l *logger) Error(msg string, fs ...zap.Field) { l.log(logging.Error, msg, fs...) }
func (l *logger) Fatal(msg string, fs ...zap.Field) { l.log(logging.Fatal, msg, fs...) }

// A LogRecorder is a [logging.Logger] that stores logs as [LogRecord] entries
// for inspection. If constructed with a positive limit, only the most recent
// entries are kept.
type LogRecorder struct {
	*logger
	limit   int
	Records []*LogRecord
}

// NewLogRecorder constructs a new [LogRecorder] at the specified level that
// keeps all entries.
func NewLogRecorder(level logging.Level) *LogRecorder {
	return newLogRecorder(level, 0)
}

func newLogRecorder(level logging.Level, limit int) *LogRecorder {
	r := &LogRecorder{limit: limit}
	r.logger = &logger{
		level: level,
		rec:   r,
	}
	return r
}

func (r *LogRecorder) record(rec *LogRecord) {
	if r.limit > 0 && len(r.Records) == r.limit {
		r.Records = slices.Delete(r.Records, 0, 1)
	}
	r.Records = append(r.Records, rec)
}

// A LogRecord is a single entry in a [LogRecorder].
type LogRecord struct {
	Level  logging.Level
	Msg    string
	Fields []zap.Field
}

// String formats the record on a single line, with fields in key order.
func (r *LogRecord) String() string {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range r.Fields {
		f.AddTo(enc)
	}
	return fmt.Sprintf("[%s] %s %v", r.Level, r.Msg, enc.Fields)
}

// Filter returns the recorded logs for which `fn` returns true.
func (r *LogRecorder) Filter(fn func(*LogRecord) bool) []*LogRecord {
	var out []*LogRecord
	for _, rec := range r.Records {
		if fn(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// At returns all recorded logs at the specified [logging.Level].
func (r *LogRecorder) At(lvl logging.Level) []*LogRecord {
	return r.Filter(func(rec *LogRecord) bool { return rec.Level == lvl })
}

// ReplayOnFailure returns a [LogRecorder] at [logging.Debug] that keeps the
// `last` most recent entries (all if `last <= 0`). If the test has failed by
// the time it is cleaned up, the kept entries are written to [testing.TB.Logf]
// in order, so the operations leading up to a failure can be read alongside
// the error.
func ReplayOnFailure(tb testing.TB, last int) *LogRecorder {
	tb.Helper()
	r := newLogRecorder(logging.Debug, last)
	tb.Cleanup(func() {
		if !tb.Failed() {
			return
		}
		tb.Logf("Replaying %d log entries:", len(r.Records))
		for _, rec := range r.Records {
			tb.Logf("%v", rec)
		}
	})
	return r
}
