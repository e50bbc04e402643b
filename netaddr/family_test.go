package netaddr_test

import (
	"github.com/evloop-go/tcpmux/netaddr"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Family", func() {
	DescribeTable("parses case-insensitively",
		func(in string, want netaddr.Family) {
			Expect(netaddr.Parse(in)).To(Equal(want))
		},
		Entry("tcp", "tcp", netaddr.FamilyTCP),
		Entry("TCP", "TCP", netaddr.FamilyTCP),
		Entry("tcp4", "tcp4", netaddr.FamilyTCP4),
		Entry("tcp6", "tcp6", netaddr.FamilyTCP6),
		Entry("unknown", "udp", netaddr.FamilyUnknown),
	)

	It("renders back to the net.Dial network name", func() {
		Expect(netaddr.FamilyTCP4.String()).To(Equal("tcp4"))
		Expect(netaddr.FamilyUnknown.String()).To(Equal(""))
	})
})
