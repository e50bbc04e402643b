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

package config_test

import (
	"github.com/evloop-go/tcpmux/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"
)

var _ = Describe("Config", func() {
	It("applies defaults and validates a minimal bind-only document", func() {
		v := viper.New()
		v.Set("bind", "127.0.0.1:9000")

		cfg, err := config.New(v)
		Expect(err).To(BeNil())
		Expect(cfg.Backlog).To(Equal(config.DefaultBacklog))
		Expect(cfg.BufferInitialSize).To(Equal(config.DefaultBufferInitialSize))
		Expect(cfg.BufferMultiplier).To(Equal(config.DefaultBufferMultiplier))
		Expect(cfg.AcceptsPerSweep).To(Equal(config.DefaultAcceptsPerSweep))
	})

	It("rejects a document with no bind spec", func() {
		v := viper.New()
		_, err := config.New(v)
		Expect(err).ToNot(BeNil())
	})

	It("rejects a buffer growth multiplier not greater than 1", func() {
		v := viper.New()
		v.Set("bind", "9000")
		v.Set("bufferMultiplier", 0.5)

		_, err := config.New(v)
		Expect(err).ToNot(BeNil())
	})

	It("accepts a fully populated config with no TLS sub-config", func() {
		cfg := &config.Config{
			Bind:              "9000",
			Backlog:           config.DefaultBacklog,
			BufferInitialSize: config.DefaultBufferInitialSize,
			BufferMultiplier:  config.DefaultBufferMultiplier,
			AcceptsPerSweep:   config.DefaultAcceptsPerSweep,
		}
		Expect(cfg.Validate()).To(BeNil())
	})
})
