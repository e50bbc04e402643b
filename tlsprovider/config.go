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
	"crypto/tls"
	"crypto/x509"
	"os"
	"sync"

	liberr "github.com/evloop-go/tcpmux/errors"

	libval "github.com/go-playground/validator/v10"
)

// CertPair is a certificate/key file pair, reloaded on write by Config's
// fsnotify watch once Watch is called.
type CertPair struct {
	CertFile string `mapstructure:"certFile" validate:"required,file"`
	KeyFile  string `mapstructure:"keyFile" validate:"required,file"`
}

// Config builds a *tls.Config the way certificates.Config does in the
// teacher package: explicit version bounds, an explicit cipher/curve
// allow-list, and file-backed certificate/CA material.
type Config struct {
	Certs      []CertPair `mapstructure:"certs" validate:"omitempty,dive"`
	RootCAFile string     `mapstructure:"rootCAFile" validate:"omitempty,file"`
	ClientCAFile string   `mapstructure:"clientCAFile" validate:"omitempty,file"`

	MinVersion uint16             `mapstructure:"versionMin"`
	MaxVersion uint16             `mapstructure:"versionMax"`
	CipherList []uint16           `mapstructure:"cipherList"`
	CurveList  []tls.CurveID      `mapstructure:"curveList"`
	ClientAuth tls.ClientAuthType `mapstructure:"authClient"`

	SessionTicketDisable bool `mapstructure:"sessionTicketDisable"`
	DynamicSizingDisable bool `mapstructure:"dynamicSizingDisable"`

	mu      sync.Mutex
	watcher *watcher
	cached  *tls.Config
}

// Validate runs struct-tag validation, mirroring certificates.Config.Validate.
func (c *Config) Validate() liberr.Error {
	if er := libval.New().Struct(c); er != nil {
		err := liberr.CodeConfig.Error(nil)
		if ve, ok := er.(libval.ValidationErrors); ok {
			for _, f := range ve {
				err.Add(liberr.Newf(liberr.CodeConfig, "field %q failed constraint %q", f.StructNamespace(), f.ActualTag()))
			}
		} else {
			err.Add(er)
		}
		if err.HasParent() {
			return err
		}
	}
	return nil
}

// TLS builds a *tls.Config for the given SNI server name (empty for a
// server-side config that doesn't select by name).
func (c *Config) TLS(serverName string) (*tls.Config, liberr.Error) {
	if serverName == "" {
		c.mu.Lock()
		cached := c.cached
		c.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
	}

	cfg := &tls.Config{
		ServerName:             serverName,
		MinVersion:             c.MinVersion,
		MaxVersion:             c.MaxVersion,
		CipherSuites:           c.CipherList,
		CurvePreferences:       c.CurveList,
		ClientAuth:             c.ClientAuth,
		SessionTicketsDisabled: c.SessionTicketDisable,
		DynamicRecordSizingDisabled: c.DynamicSizingDisable,
	}

	for _, pair := range c.Certs {
		cert, err := tls.LoadX509KeyPair(pair.CertFile, pair.KeyFile)
		if err != nil {
			return nil, liberr.CodeTLSHandshake.Error(err)
		}
		cfg.Certificates = append(cfg.Certificates, cert)
	}

	if c.RootCAFile != "" {
		pool, err := loadCertPool(c.RootCAFile)
		if err != nil {
			return nil, liberr.CodeTLSHandshake.Error(err)
		}
		cfg.RootCAs = pool
	}

	if c.ClientCAFile != "" {
		pool, err := loadCertPool(c.ClientCAFile)
		if err != nil {
			return nil, liberr.CodeTLSHandshake.Error(err)
		}
		cfg.ClientCAs = pool
	}

	if serverName == "" {
		c.mu.Lock()
		c.cached = cfg
		c.mu.Unlock()
	}

	return cfg, nil
}

func loadCertPool(file string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(pem)
	return pool, nil
}
