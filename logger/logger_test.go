package logger_test

import (
	"bytes"
	"strings"

	liblog "github.com/evloop-go/tcpmux/logger"

	"github.com/hashicorp/go-hclog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer
	var log liblog.Logger

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log = liblog.New(buf, liblog.DebugLevel)
	})

	It("writes entries at or above the configured level", func() {
		log.SetLevel(liblog.WarnLevel)
		log.Info("should be dropped", nil)
		log.Warning("should appear", nil)
		Expect(buf.String()).NotTo(ContainSubstring("should be dropped"))
		Expect(buf.String()).To(ContainSubstring("should appear"))
	})

	It("merges default fields with per-entry fields", func() {
		log.SetFields(liblog.Fields{"component": "mux"})
		log.Info("accepted connection", liblog.Fields{"remote": "127.0.0.1:1"})
		out := buf.String()
		Expect(out).To(ContainSubstring("component=mux"))
		Expect(out).To(ContainSubstring("remote=\"127.0.0.1:1\""))
	})

	It("WithFields clones without mutating the parent", func() {
		base := log.WithFields(liblog.Fields{"conn": "abc"})
		log.Info("base entry", nil)
		base.Info("child entry", nil)
		Expect(buf.String()).NotTo(ContainSubstring("conn=abc base"))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines[len(lines)-1]).To(ContainSubstring("conn=abc"))
	})

	It("adapts to hclog.Logger", func() {
		var h hclog.Logger = liblog.AsHCLog(log)
		h.Info("hello", "k", "v")
		Expect(buf.String()).To(ContainSubstring("hello"))
		Expect(buf.String()).To(ContainSubstring("k=v"))
	})
})
