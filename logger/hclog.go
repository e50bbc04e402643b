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
	"log"
	"os"

	"github.com/hashicorp/go-hclog"
)

const fieldHCLogName = "hclog.name"

type hclogAdapter struct {
	l    Logger
	name string
}

// AsHCLog adapts l to the hclog.Logger interface so it can be handed to
// dependencies (e.g. quic/http2 transports) that expect hclog.
func AsHCLog(l Logger) hclog.Logger {
	return &hclogAdapter{l: l}
}

func (h *hclogAdapter) toFields(args []interface{}) Fields {
	f := make(Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return f
}

func (h *hclogAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		return
	case hclog.Trace, hclog.Debug:
		h.l.Debug(msg, h.toFields(args))
	case hclog.Info:
		h.l.Info(msg, h.toFields(args))
	case hclog.Warn:
		h.l.Warning(msg, h.toFields(args))
	case hclog.Error:
		h.l.Error(msg, h.toFields(args))
	}
}

func (h *hclogAdapter) Trace(msg string, args ...interface{}) { h.l.Debug(msg, h.toFields(args)) }
func (h *hclogAdapter) Debug(msg string, args ...interface{}) { h.l.Debug(msg, h.toFields(args)) }
func (h *hclogAdapter) Info(msg string, args ...interface{})  { h.l.Info(msg, h.toFields(args)) }
func (h *hclogAdapter) Warn(msg string, args ...interface{})  { h.l.Warning(msg, h.toFields(args)) }
func (h *hclogAdapter) Error(msg string, args ...interface{}) { h.l.Error(msg, h.toFields(args)) }

func (h *hclogAdapter) IsTrace() bool { return h.l.GetLevel() <= DebugLevel }
func (h *hclogAdapter) IsDebug() bool { return h.l.GetLevel() <= DebugLevel }
func (h *hclogAdapter) IsInfo() bool  { return h.l.GetLevel() <= InfoLevel }
func (h *hclogAdapter) IsWarn() bool  { return h.l.GetLevel() <= WarnLevel }
func (h *hclogAdapter) IsError() bool { return h.l.GetLevel() <= ErrorLevel }
func (h *hclogAdapter) ImpliedArgs() []interface{} { return nil }

func (h *hclogAdapter) With(args ...interface{}) hclog.Logger {
	return &hclogAdapter{l: h.l.WithFields(h.toFields(args)), name: h.name}
}

func (h *hclogAdapter) Name() string { return h.name }

func (h *hclogAdapter) Named(name string) hclog.Logger {
	return &hclogAdapter{l: h.l.WithFields(Fields{fieldHCLogName: name}), name: name}
}

func (h *hclogAdapter) ResetNamed(name string) hclog.Logger {
	return h.Named(name)
}

func (h *hclogAdapter) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Off, hclog.NoLevel:
		h.l.SetLevel(NilLevel)
	case hclog.Trace, hclog.Debug:
		h.l.SetLevel(DebugLevel)
	case hclog.Info:
		h.l.SetLevel(InfoLevel)
	case hclog.Warn:
		h.l.SetLevel(WarnLevel)
	case hclog.Error:
		h.l.SetLevel(ErrorLevel)
	}
}

func (h *hclogAdapter) GetLevel() hclog.Level {
	switch h.l.GetLevel() {
	case NilLevel:
		return hclog.Off
	case DebugLevel:
		return hclog.Debug
	case InfoLevel:
		return hclog.Info
	case WarnLevel:
		return hclog.Warn
	case ErrorLevel, FatalLevel:
		return hclog.Error
	default:
		return hclog.Info
	}
}

func (h *hclogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func (h *hclogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return h.l
}
