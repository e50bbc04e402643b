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

package metrics_test

import (
	"time"

	"github.com/evloop-go/tcpmux/metrics"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(g prometheus.Gauge) float64 {
	m := &dto.Metric{}
	Expect(g.Write(m)).To(Succeed())
	return m.GetGauge().GetValue()
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	Expect(c.Write(m)).To(Succeed())
	return m.GetCounter().GetValue()
}

var _ = Describe("Registry", func() {
	It("tracks connections active as accepted minus closed", func() {
		reg := metrics.New(prometheus.NewRegistry())
		reg.Accepted()
		reg.Accepted()
		reg.Closed()
		Expect(gaugeValue(reg.ConnectionsActive)).To(Equal(1.0))
	})

	It("counts connect successes and failures independently", func() {
		reg := metrics.New(prometheus.NewRegistry())
		reg.Connected()
		reg.ConnectFailed()
		reg.ConnectFailed()
		Expect(counterValue(reg.ConnectsTotal)).To(Equal(1.0))
		Expect(counterValue(reg.ConnectFailures)).To(Equal(2.0))
	})

	It("accumulates byte counters and ignores non-positive deltas", func() {
		reg := metrics.New(prometheus.NewRegistry())
		reg.BytesReceived(128)
		reg.BytesReceived(0)
		reg.BytesSent(-5)
		Expect(counterValue(reg.BytesReceivedTotal)).To(Equal(128.0))
		Expect(counterValue(reg.BytesSentTotal)).To(Equal(0.0))
	})

	It("records a poll sweep duration", func() {
		reg := metrics.New(prometheus.NewRegistry())
		reg.PollSweep(5 * time.Millisecond)
		Expect(counterValue(reg.PollSweepsTotal)).To(Equal(1.0))
	})

	It("is a safe no-op when nil", func() {
		var reg *metrics.Registry
		Expect(func() {
			reg.Accepted()
			reg.Connected()
			reg.ConnectFailed()
			reg.Closed()
			reg.BytesReceived(10)
			reg.BytesSent(10)
			reg.PollSweep(time.Millisecond)
		}).ToNot(Panic())
	})
})
