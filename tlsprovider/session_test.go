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

package tlsprovider_test

import (
	"crypto/tls"
	"net"

	"github.com/evloop-go/tcpmux/tlsprovider"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Session", func() {
	var (
		dir               string
		certFile, keyFile string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		certFile, keyFile = genSelfSigned(dir)
	})

	It("completes a full-duplex blocking handshake between a client and server pair", func() {
		serverCfg := &tlsprovider.Config{
			Certs: []tlsprovider.CertPair{{CertFile: certFile, KeyFile: keyFile}},
		}
		serverTLS, err := serverCfg.TLS("")
		Expect(err).To(BeNil())

		clientTLS := &tls.Config{InsecureSkipVerify: true}

		srv, cli := net.Pipe()
		defer srv.Close()
		defer cli.Close()

		serverSess := tlsprovider.NewServerSession(srv, serverTLS)
		clientSess := tlsprovider.NewClientSession(cli, clientTLS)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				res, hErr := serverSess.Handshake()
				Expect(hErr).To(BeNil())
				if res == tlsprovider.HandshakeDone {
					return
				}
			}
		}()

		for {
			res, hErr := clientSess.Handshake()
			Expect(hErr).To(BeNil())
			if res == tlsprovider.HandshakeDone {
				break
			}
		}
		Eventually(done).Should(BeClosed())
	})
})
