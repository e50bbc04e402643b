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

package config

import (
	liberr "github.com/evloop-go/tcpmux/errors"
	"github.com/evloop-go/tcpmux/tlsprovider"

	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied by New when the loaded document omits them.
const (
	DefaultBacklog            = 128
	DefaultBufferInitialSize  = 4096
	DefaultBufferMultiplier   = 2.0
	DefaultAcceptsPerSweep    = 1
)

// Config holds everything needed to build a mux.Server.
type Config struct {
	// Bind is a spec string understood by netaddr.ParseBindSpec: a bare
	// port, "ipv4:port" or "[ipv6]:port".
	Bind string `mapstructure:"bind" validate:"required"`

	// Backlog is validated but not applied: mux.Bind listens through package
	// net, which chooses the listen() backlog itself.
	Backlog int `mapstructure:"backlog" validate:"gte=0"`

	// BufferInitialSize is the initial capacity of every Conn's recv/send IOBuf.
	BufferInitialSize int `mapstructure:"bufferInitialSize" validate:"gt=0"`

	// BufferMultiplier is the growth factor applied by IOBuf when it runs out of room.
	BufferMultiplier float64 `mapstructure:"bufferMultiplier" validate:"gt=1"`

	// AcceptsPerSweep bounds how many connections a single poll sweep
	// admits. Defaults to 1 — some platforms misbehave when a listener
	// loops accepting in a tight, non-blocking fashion — and is kept
	// configurable for embedders willing to accept that platform risk.
	AcceptsPerSweep int `mapstructure:"acceptsPerSweep" validate:"gte=1"`

	// TLS is nil for a plaintext listener.
	TLS *tlsprovider.Config `mapstructure:"tls" validate:"omitempty"`
}

// New decodes a Config from v, applying defaults for optional fields the
// document omits, then validating.
func New(v *viper.Viper) (*Config, liberr.Error) {
	v.SetDefault("backlog", DefaultBacklog)
	v.SetDefault("bufferInitialSize", DefaultBufferInitialSize)
	v.SetDefault("bufferMultiplier", DefaultBufferMultiplier)
	v.SetDefault("acceptsPerSweep", DefaultAcceptsPerSweep)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, liberr.CodeConfig.Error(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate runs struct-tag validation over the config and, if present, its
// TLS sub-config, aggregating every failure under one parent error.
func (c *Config) Validate() liberr.Error {
	out := liberr.CodeConfig.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, f := range ve {
				out.Add(liberr.Newf(liberr.CodeConfig, "field %q failed constraint %q", f.StructNamespace(), f.ActualTag()))
			}
		} else {
			out.Add(er)
		}
	}

	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			out.Add(err)
		}
	}

	if out.HasParent() {
		return out
	}
	return nil
}
