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

import "io"

// Logger is the structured logging surface used across tcpmux.
type Logger interface {
	io.Writer

	// SetLevel changes the minimal level emitted by this logger.
	SetLevel(lvl Level)
	// GetLevel returns the minimal level emitted by this logger.
	GetLevel() Level

	// SetFields replaces the default fields attached to every entry.
	SetFields(f Fields)
	// GetFields returns the default fields attached to every entry.
	GetFields() Fields

	// WithFields returns a clone of this logger with extra default fields merged in.
	WithFields(f Fields) Logger

	Debug(message string, data Fields)
	Info(message string, data Fields)
	Warning(message string, data Fields)
	Error(message string, data Fields)
	Fatal(message string, data Fields)
}
