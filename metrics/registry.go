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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric a mux.Server reports. All methods are safe
// to call on a nil *Registry, which makes instrumentation fully optional:
// an embedder that never calls New never links a running collector.
type Registry struct {
	ConnectionsActive  prometheus.Gauge
	AcceptsTotal       prometheus.Counter
	ConnectsTotal      prometheus.Counter
	ConnectFailures    prometheus.Counter
	BytesReceivedTotal prometheus.Counter
	BytesSentTotal     prometheus.Counter
	PollSweepsTotal    prometheus.Counter
	PollDuration       prometheus.Histogram
}

// New registers tcpmux_* metrics against reg and returns the Registry
// wrapping them. Pass prometheus.DefaultRegisterer for the global registry.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tcpmux_connections_active",
			Help: "Number of connections currently tracked by the poll loop.",
		}),
		AcceptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_accepts_total",
			Help: "Total inbound connections accepted.",
		}),
		ConnectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_connects_total",
			Help: "Total outbound connections that completed successfully.",
		}),
		ConnectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_connect_failures_total",
			Help: "Total outbound connection attempts that failed.",
		}),
		BytesReceivedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_bytes_received_total",
			Help: "Total bytes read from connection sockets.",
		}),
		BytesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_bytes_sent_total",
			Help: "Total bytes written to connection sockets.",
		}),
		PollSweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tcpmux_poll_sweeps_total",
			Help: "Total poll() sweeps performed.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tcpmux_poll_duration_seconds",
			Help:    "Wall-clock duration of one poll() sweep.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			r.ConnectionsActive,
			r.AcceptsTotal,
			r.ConnectsTotal,
			r.ConnectFailures,
			r.BytesReceivedTotal,
			r.BytesSentTotal,
			r.PollSweepsTotal,
			r.PollDuration,
		)
	}

	return r
}

func (r *Registry) connectionOpened() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Inc()
}

func (r *Registry) connectionClosed() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Dec()
}

// Accepted records one accepted inbound connection.
func (r *Registry) Accepted() {
	if r == nil {
		return
	}
	r.AcceptsTotal.Inc()
	r.connectionOpened()
}

// Connected records one successfully completed outbound connection.
func (r *Registry) Connected() {
	if r == nil {
		return
	}
	r.ConnectsTotal.Inc()
	r.connectionOpened()
}

// ConnectFailed records one failed outbound connection attempt.
func (r *Registry) ConnectFailed() {
	if r == nil {
		return
	}
	r.ConnectFailures.Inc()
}

// Closed records one connection leaving the poll loop's connection list.
func (r *Registry) Closed() {
	r.connectionClosed()
}

// BytesReceived adds n to the running received-bytes total.
func (r *Registry) BytesReceived(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.BytesReceivedTotal.Add(float64(n))
}

// BytesSent adds n to the running sent-bytes total.
func (r *Registry) BytesSent(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.BytesSentTotal.Add(float64(n))
}

// PollSweep records the duration of one completed poll() sweep.
func (r *Registry) PollSweep(d time.Duration) {
	if r == nil {
		return
	}
	r.PollSweepsTotal.Inc()
	r.PollDuration.Observe(d.Seconds())
}
