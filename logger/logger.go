/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logger is the thin structured-logging seam the rest of mockwire
// logs through. It wraps a *logrus.Logger the way nabbar-golib/logger wraps
// logrus for its own components, scoped down to what a background
// acceptor/session loop needs: leveled, field-carrying log lines, no
// hooks, no file/syslog sinks (those are ambient concerns the mock
// server's test-harness role has no use for).
package logger

import (
	"io"
	"os"

	loglvl "github.com/sabouaram/mockwire/logger/level"
	"github.com/sirupsen/logrus"
)

// Logger is the structured logger handed to every component that can emit
// a diagnostic: the acceptor, the session loop, and the server lifecycle.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	SetLevel(lvl loglvl.Level)
}

type logger struct {
	e *logrus.Entry
}

// New returns a Logger writing to stderr at InfoLevel, in the text
// formatter nabbar-golib's default logger configuration uses.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(loglvl.InfoLevel.Logrus())

	return &logger{e: logrus.NewEntry(l)}
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{e: l.e.WithField(key, value)}
}

func (l *logger) WithFields(fields map[string]interface{}) Logger {
	return &logger{e: l.e.WithFields(fields)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{e: l.e.WithError(err)}
}

func (l *logger) Debug(args ...interface{}) { l.e.Debug(args...) }
func (l *logger) Info(args ...interface{})  { l.e.Info(args...) }
func (l *logger) Warn(args ...interface{})  { l.e.Warn(args...) }
func (l *logger) Error(args ...interface{}) { l.e.Error(args...) }

func (l *logger) SetLevel(lvl loglvl.Level) {
	if lvl == loglvl.NilLevel {
		l.e.Logger.SetOutput(io.Discard)
		return
	}
	l.e.Logger.SetOutput(os.Stderr)
	l.e.Logger.SetLevel(lvl.Logrus())
}
