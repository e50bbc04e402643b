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

package mux

import (
	"net"
	"sync"
	"time"

	liberr "github.com/evloop-go/tcpmux/errors"
)

// Poll runs one sweep of the event loop: Phase A arms read/write
// readiness and delivers POLL, Phase B waits up to timeoutMs for
// something to become ready, Phase C dispatches accept/read/write in
// list order, and a final pass reclaims every Connection now marked
// CLOSE_IMMEDIATELY. It returns the number of Connections still linked
// when it returns.
func (s *Server) Poll(timeoutMs int) (int, liberr.Error) {
	start := time.Now()
	deadline := start.Add(time.Duration(timeoutMs) * time.Millisecond)

	var armedRead, armedWrite []*Conn

	// Phase A — pre-poll fan-out.
	for c := s.head; c != nil; {
		next := c.next

		s.deliver(c, EventPoll, nil)

		armedRead = append(armedRead, c)
		if !c.flags.has(flagConnecting) && c.send.Len() > 0 && !c.flags.has(flagBufferButDontSend) {
			armedWrite = append(armedWrite, c)
		}

		if c.flags.has(flagCloseImmediately) && c.send.Len() == 0 {
			s.Close(c)
		}

		c = next
	}

	// Phase B — block up to deadline, waiting concurrently on every armed
	// descriptor. Each worker only touches the raw socket; all Conn/Server
	// mutation happens back on this goroutine once results are collected.
	type result struct {
		read  *ioOutcome
		write *ioOutcome
	}
	results := make(map[*Conn]*result, len(armedRead)+len(armedWrite))
	var mu sync.Mutex
	var wg sync.WaitGroup

	getResult := func(c *Conn) *result {
		mu.Lock()
		defer mu.Unlock()
		r, ok := results[c]
		if !ok {
			r = &result{}
			results[c] = r
		}
		return r
	}

	var acceptedMu sync.Mutex
	var acceptedRaw []net.Conn
	if s.listener != nil {
		n := s.cfg.AcceptsPerSweep
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if raw := s.acceptOnce(deadline); raw != nil {
					acceptedMu.Lock()
					acceptedRaw = append(acceptedRaw, raw)
					acceptedMu.Unlock()
				}
			}()
		}
	}

	for _, c := range armedRead {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := readWorker(c, deadline)
			r := getResult(c)
			r.read = &out
		}()
	}

	for _, c := range armedWrite {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := writeWorker(c, deadline)
			r := getResult(c)
			r.write = &out
		}()
	}

	wg.Wait()

	// Phase C — dispatch, in list order. Finishing an accept — building the
	// Conn, linking it, delivering ACCEPT — happens here on the Poll
	// goroutine, never inside the Phase B worker that only performed the
	// blocking net.Listener.Accept call.
	for _, raw := range acceptedRaw {
		if c := s.finishAccept(raw); c != nil {
			c.lastIOTime = time.Now()
		}
	}

	for c := s.head; c != nil; {
		next := c.next

		r := results[c]
		if r != nil {
			if r.read != nil {
				c.lastIOTime = time.Now()
				s.applyReadOutcome(c, r.read)
			}
			if r.write != nil && !c.flags.has(flagBufferButDontSend) {
				c.lastIOTime = time.Now()
				s.applyWriteOutcome(c, r.write)
			}
		}

		c = next
	}

	// Final pass: reclaim everything now marked CLOSE_IMMEDIATELY and
	// count the remainder. A write in Phase C may have drained the last
	// byte of a FINISHED_SENDING_DATA Connection and scheduled its close
	// only just now; this pass reclaims it before Poll returns.
	for c := s.head; c != nil; {
		next := c.next
		if c.flags.has(flagCloseImmediately) {
			s.Close(c)
		}
		c = next
	}

	if s.metrics != nil {
		s.metrics.PollSweep(time.Since(start))
	}

	return s.count, nil
}

func (s *Server) applyReadOutcome(c *Conn, out *ioOutcome) {
	wasConnecting := c.flags.has(flagConnecting)

	if wasConnecting {
		if !out.connectDone {
			return // still want-read/want-write; re-armed next sweep
		}
		c.flags.clear(flagConnecting)

		if out.connectErr != nil {
			if s.metrics != nil {
				s.metrics.ConnectFailed()
			}
			s.deliver(c, EventConnect, &ConnectResult{Err: out.connectErr})
			c.flags.set(flagCloseImmediately)
			return
		}

		if c.tls != nil {
			c.flags.set(flagSSLHandshakeDone)
		}
		if s.metrics != nil {
			s.metrics.Connected()
		}
		s.deliver(c, EventConnect, &ConnectResult{Err: nil})
		return
	}

	if c.tls != nil && !c.flags.has(flagSSLHandshakeDone) {
		if out.closeNow {
			c.flags.set(flagCloseImmediately)
			return
		}
		if out.connectDone {
			c.flags.set(flagSSLHandshakeDone)
		}
		return
	}

	if out.closeNow {
		c.flags.set(flagCloseImmediately)
		return
	}

	if out.recvReady {
		n, _ := c.recv.Append(out.recvData)
		if s.metrics != nil {
			s.metrics.BytesReceived(n)
		}
		s.deliver(c, EventRecv, nil)
	}
}

func (s *Server) applyWriteOutcome(c *Conn, out *ioOutcome) {
	if out.closeNow {
		c.flags.set(flagCloseImmediately)
		return
	}

	if out.sendReady {
		c.send.Remove(out.sendN)
		if s.metrics != nil {
			s.metrics.BytesSent(out.sendN)
		}
		s.deliver(c, EventSend, nil)
	}

	if c.send.Len() == 0 && c.flags.has(flagFinishedSendingData) {
		c.flags.set(flagCloseImmediately)
	}
}
