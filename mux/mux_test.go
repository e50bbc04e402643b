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

package mux_test

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/evloop-go/tcpmux/config"
	"github.com/evloop-go/tcpmux/mux"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func testConfig() *config.Config {
	return &config.Config{
		Bind:              "127.0.0.1:0",
		Backlog:           8,
		BufferInitialSize: 256,
		BufferMultiplier:  2,
		AcceptsPerSweep:   1,
	}
}

// recorder captures every event a Server's callback sees, guarded by a
// mutex since the callback and the test goroutine both touch it (the
// callback itself always runs on the Poll goroutine, but assertions read
// the slice from the test goroutine between Poll calls).
type recorder struct {
	mu     sync.Mutex
	events []mux.EventKind
}

func (r *recorder) record(ev mux.EventKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(ev mux.EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == ev {
			n++
		}
	}
	return n
}

func pollUntil(s *mux.Server, timeoutMs int, rounds int, cond func() bool) {
	for i := 0; i < rounds && !cond(); i++ {
		_, _ = s.Poll(timeoutMs)
	}
}

var _ = Describe("Server", func() {
	It("accepts, echoes, and closes a connection end to end", func() {
		rec := &recorder{}
		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			switch ev {
			case mux.EventRecv:
				b := c.Recv().Bytes()
				n := c.Send(b)
				c.Recv().Remove(n)
			}
			return 0
		})
		defer srv.Free()

		port := srv.Bind("127.0.0.1:0")
		Expect(port).To(BeNumerically(">", 0))

		clientDone := make(chan struct{})
		var echoed []byte
		go func() {
			defer close(clientDone)
			conn, err := net.Dial("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
			if err != nil {
				return
			}
			defer conn.Close()
			_, _ = conn.Write([]byte("hello"))
			buf := make([]byte, 5)
			_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			n, _ := conn.Read(buf)
			echoed = buf[:n]
		}()

		pollUntil(srv, 200, 50, func() bool { return rec.count(mux.EventAccept) > 0 })
		Expect(rec.count(mux.EventAccept)).To(Equal(1))

		pollUntil(srv, 200, 50, func() bool { return rec.count(mux.EventRecv) > 0 })
		Expect(rec.count(mux.EventRecv)).To(Equal(1))

		pollUntil(srv, 200, 50, func() bool { return rec.count(mux.EventSend) > 0 })
		Expect(rec.count(mux.EventSend)).To(Equal(1))

		<-clientDone
		Expect(echoed).To(Equal([]byte("hello")))

		pollUntil(srv, 50, 20, func() bool { return rec.count(mux.EventClose) > 0 })
		Expect(rec.count(mux.EventClose)).To(Equal(1))
	})

	It("reports a non-nil error and closes on a failed outbound connect", func() {
		ln, err := net.Listen("tcp4", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		port := ln.Addr().(*net.TCPAddr).Port
		Expect(ln.Close()).To(Succeed())

		rec := &recorder{}
		var gotErr error
		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			if ev == mux.EventConnect {
				gotErr = payload.(*mux.ConnectResult).Err
			}
			return 0
		})
		defer srv.Free()

		ok := srv.Connect("127.0.0.1", port, false, nil)
		Expect(ok).To(BeTrue())

		pollUntil(srv, 200, 50, func() bool { return rec.count(mux.EventConnect) > 0 })
		Expect(rec.count(mux.EventConnect)).To(Equal(1))
		Expect(gotErr).To(HaveOccurred())

		pollUntil(srv, 50, 10, func() bool { return rec.count(mux.EventClose) > 0 })
		Expect(rec.count(mux.EventClose)).To(Equal(1))
	})

	It("stalls writes while BUFFER_BUT_DONT_SEND is set and flushes once cleared", func() {
		rec := &recorder{}
		var held *mux.Conn
		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			if ev == mux.EventAccept {
				held = c
				c.SetBufferButDontSend(true)
				c.Send([]byte("stalled"))
			}
			return 0
		})
		defer srv.Free()

		port := srv.Bind("127.0.0.1:0")

		clientReady := make(chan net.Conn, 1)
		go func() {
			conn, err := net.Dial("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
			if err == nil {
				clientReady <- conn
			}
		}()
		client := <-clientReady
		defer client.Close()

		pollUntil(srv, 50, 20, func() bool { return rec.count(mux.EventAccept) > 0 })
		Expect(held).NotTo(BeNil())

		for i := 0; i < 5; i++ {
			_, _ = srv.Poll(20)
		}
		Expect(rec.count(mux.EventSend)).To(Equal(0))

		held.SetBufferButDontSend(false)
		pollUntil(srv, 50, 20, func() bool { return rec.count(mux.EventSend) > 0 })
		Expect(rec.count(mux.EventSend)).To(BeNumerically(">", 0))
	})

	It("closes once FINISHED_SENDING_DATA drains the send buffer", func() {
		rec := &recorder{}
		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			if ev == mux.EventAccept {
				c.Send([]byte("goodbye"))
				c.SetFinishedSendingData()
			}
			return 0
		})
		defer srv.Free()

		port := srv.Bind("127.0.0.1:0")

		clientDone := make(chan struct{})
		go func() {
			defer close(clientDone)
			conn, err := net.Dial("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
			if err != nil {
				return
			}
			defer conn.Close()
			buf := make([]byte, 64)
			_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			for {
				n, err := conn.Read(buf)
				if n > 0 || err != nil {
					return
				}
			}
		}()

		pollUntil(srv, 50, 50, func() bool { return rec.count(mux.EventClose) > 0 })
		Expect(rec.count(mux.EventClose)).To(Equal(1))
		Expect(rec.count(mux.EventSend)).To(BeNumerically(">", 0))
		<-clientDone
	})

	It("binds an ephemeral port and a subsequent connect to it succeeds", func() {
		rec := &recorder{}
		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			return 0
		})
		defer srv.Free()

		port := srv.Bind("127.0.0.1:0")
		Expect(port).To(BeNumerically(">", 0))

		ok := srv.Connect("127.0.0.1", port, false, nil)
		Expect(ok).To(BeTrue())

		pollUntil(srv, 50, 50, func() bool {
			return rec.count(mux.EventAccept) > 0 && rec.count(mux.EventConnect) > 0
		})
		Expect(rec.count(mux.EventAccept)).To(Equal(1))
		Expect(rec.count(mux.EventConnect)).To(Equal(1))
	})

	It("reclaims a Connection that sets CLOSE_IMMEDIATELY mid-sweep without disturbing its siblings", func() {
		const total = 10
		rec := &recorder{}
		var mu sync.Mutex
		var ready bool
		conns := make([]*mux.Conn, 0, total)

		srv := mux.New(testConfig(), func(c *mux.Conn, ev mux.EventKind, payload interface{}) int {
			rec.record(ev)
			if ev == mux.EventAccept {
				mu.Lock()
				c.UserData = len(conns)
				conns = append(conns, c)
				mu.Unlock()
			}
			if ev == mux.EventPoll && ready {
				if idx, ok := c.UserData.(int); ok && idx == 4 {
					c.SetCloseImmediately()
				}
			}
			return 0
		})
		defer srv.Free()

		port := srv.Bind("127.0.0.1:0")

		clients := make([]net.Conn, 0, total)
		for i := 0; i < total; i++ {
			conn, err := net.Dial("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
			Expect(err).NotTo(HaveOccurred())
			clients = append(clients, conn)
			pollUntil(srv, 50, 20, func() bool { return len(conns) > i })
		}
		for _, c := range clients {
			defer c.Close()
		}
		Expect(srv.ConnectionCount()).To(Equal(total))

		ready = true
		pollUntil(srv, 20, 20, func() bool { return rec.count(mux.EventClose) > 0 })

		Expect(rec.count(mux.EventClose)).To(Equal(1))
		Expect(srv.ConnectionCount()).To(Equal(total - 1))
	})
})
