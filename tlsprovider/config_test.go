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
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/evloop-go/tcpmux/tlsprovider"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func genSelfSigned(dir string) (certFile, keyFile string) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	Expect(err).ToNot(HaveOccurred())

	notBefore := time.Now()
	notAfter := notBefore.Add(24 * time.Hour)
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	Expect(err).ToNot(HaveOccurred())

	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"tcpmux test"}},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	Expect(err).ToNot(HaveOccurred())

	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")

	certBuf := &bytes.Buffer{}
	Expect(pem.Encode(certBuf, &pem.Block{Type: "CERTIFICATE", Bytes: der})).To(Succeed())
	Expect(os.WriteFile(certFile, certBuf.Bytes(), 0o600)).To(Succeed())

	keyDER, err := x509.MarshalPKCS8PrivateKey(priv)
	Expect(err).ToNot(HaveOccurred())
	keyBuf := &bytes.Buffer{}
	Expect(pem.Encode(keyBuf, &pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})).To(Succeed())
	Expect(os.WriteFile(keyFile, keyBuf.Bytes(), 0o600)).To(Succeed())

	return certFile, keyFile
}

var _ = Describe("Config", func() {
	var (
		dir             string
		certFile, keyFile string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		certFile, keyFile = genSelfSigned(dir)
	})

	It("validates that certificate files exist", func() {
		cfg := &tlsprovider.Config{
			Certs: []tlsprovider.CertPair{{CertFile: "/no/such/file", KeyFile: keyFile}},
		}
		Expect(cfg.Validate()).ToNot(BeNil())
	})

	It("passes validation with real files", func() {
		cfg := &tlsprovider.Config{
			Certs:      []tlsprovider.CertPair{{CertFile: certFile, KeyFile: keyFile}},
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		}
		Expect(cfg.Validate()).To(BeNil())
	})

	It("builds a *tls.Config carrying the loaded certificate", func() {
		cfg := &tlsprovider.Config{
			Certs:      []tlsprovider.CertPair{{CertFile: certFile, KeyFile: keyFile}},
			MinVersion: tls.VersionTLS12,
		}
		tc, err := cfg.TLS("")
		Expect(err).To(BeNil())
		Expect(tc.Certificates).To(HaveLen(1))
		Expect(tc.MinVersion).To(Equal(uint16(tls.VersionTLS12)))
	})

	It("caches the server-side config across calls until invalidated", func() {
		cfg := &tlsprovider.Config{
			Certs: []tlsprovider.CertPair{{CertFile: certFile, KeyFile: keyFile}},
		}
		first, err := cfg.TLS("")
		Expect(err).To(BeNil())
		second, err := cfg.TLS("")
		Expect(err).To(BeNil())
		Expect(first).To(BeIdenticalTo(second))
	})

	It("rejects a missing certificate file at build time", func() {
		cfg := &tlsprovider.Config{
			Certs: []tlsprovider.CertPair{{CertFile: certFile + ".missing", KeyFile: keyFile}},
		}
		_, err := cfg.TLS("")
		Expect(err).ToNot(BeNil())
	})
})
