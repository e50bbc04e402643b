/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

type logger struct {
	mu  sync.RWMutex
	lvl Level
	fld Fields
	log *logrus.Logger
}

// New returns a Logger writing to out (os.Stderr if nil) at the given level.
func New(out io.Writer, lvl Level) Logger {
	l := logrus.New()
	if out != nil {
		l.SetOutput(out)
	}
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(lvl.logrus())

	return &logger{
		lvl: lvl,
		fld: make(Fields),
		log: l,
	}
}

func (l *logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
	l.log.SetLevel(lvl.logrus())
}

func (l *logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lvl
}

func (l *logger) SetFields(f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fld = f
}

func (l *logger) GetFields() Fields {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fld
}

func (l *logger) WithFields(f Fields) Logger {
	l.mu.RLock()
	merged := l.fld.Merge(f)
	l.mu.RUnlock()

	return &logger{
		lvl: l.GetLevel(),
		fld: merged,
		log: l.log,
	}
}

func (l *logger) entry(data Fields) *logrus.Entry {
	all := l.GetFields().Merge(data)
	fl := make(logrus.Fields, len(all))
	for k, v := range all {
		fl[k] = v
	}
	return l.log.WithFields(fl)
}

func (l *logger) Write(p []byte) (int, error) {
	l.entry(nil).Info(string(p))
	return len(p), nil
}

func (l *logger) Debug(message string, data Fields)   { l.entry(data).Debug(message) }
func (l *logger) Info(message string, data Fields)    { l.entry(data).Info(message) }
func (l *logger) Warning(message string, data Fields) { l.entry(data).Warn(message) }
func (l *logger) Error(message string, data Fields)   { l.entry(data).Error(message) }
func (l *logger) Fatal(message string, data Fields)   { l.entry(data).Fatal(message) }
