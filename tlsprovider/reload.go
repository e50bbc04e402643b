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

package tlsprovider

import (
	liblog "github.com/evloop-go/tcpmux/logger"

	"github.com/fsnotify/fsnotify"
)

// watcher holds the fsnotify watch on a Config's certificate files; a write
// drops the cached *tls.Config under the Config's mutex.
type watcher struct {
	fsw *fsnotify.Watcher
	log liblog.Logger
}

// Watch starts watching every certificate/key/CA file named by c and drops
// the cached *tls.Config whenever one of them is written or created, so the
// next TLS call rebuilds it from disk. The returned stop function removes
// the watch; it must be called at most once.
func (c *Config) Watch(log liblog.Logger) (stop func(), err error) {
	fsw, e := fsnotify.NewWatcher()
	if e != nil {
		return func() {}, e
	}

	for _, pair := range c.Certs {
		_ = fsw.Add(pair.CertFile)
		_ = fsw.Add(pair.KeyFile)
	}
	if c.RootCAFile != "" {
		_ = fsw.Add(c.RootCAFile)
	}
	if c.ClientCAFile != "" {
		_ = fsw.Add(c.ClientCAFile)
	}

	c.mu.Lock()
	c.watcher = &watcher{fsw: fsw, log: log}
	c.mu.Unlock()

	done := make(chan struct{})
	go c.watchLoop(fsw, log, done)

	return func() {
		close(done)
		_ = fsw.Close()
	}, nil
}

func (c *Config) watchLoop(fsw *fsnotify.Watcher, log liblog.Logger, done chan struct{}) {
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if log != nil {
				log.Info("reloading TLS material after file change", liblog.Fields{"file": ev.Name})
			}
			c.invalidate()
		case e, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if log != nil {
				log.Error("TLS file watch error", liblog.Fields{"error": e.Error()})
			}
		case <-done:
			return
		}
	}
}

// invalidate drops the cached *tls.Config so the next TLS call rebuilds it
// from the certificate files as they now stand on disk.
func (c *Config) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}
