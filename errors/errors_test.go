package errors_test

import (
	"fmt"

	liberr "github.com/evloop-go/tcpmux/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CodeError", func() {
	It("carries its own code", func() {
		err := liberr.CodeHardIO.Error(nil)
		Expect(err.IsCode(liberr.CodeHardIO)).To(BeTrue())
		Expect(err.IsCode(liberr.CodeTransient)).To(BeFalse())
	})

	It("reports parent codes via HasCode", func() {
		parent := liberr.CodeResolve.Error(fmt.Errorf("lookup failed"))
		wrapped := liberr.CodeConnect.Error(parent)
		Expect(wrapped.HasCode(liberr.CodeResolve)).To(BeTrue())
		Expect(wrapped.IsCode(liberr.CodeResolve)).To(BeFalse())
	})

	It("formats CodeError with the default pattern", func() {
		err := liberr.CodeBind.Error(nil)
		Expect(err.CodeError("")).To(Equal(fmt.Sprintf("[%d] %s", liberr.CodeBind.Uint16(), err.Error())))
	})

	It("keeps Unwrap compatible with multi-error trees", func() {
		a := fmt.Errorf("a")
		b := fmt.Errorf("b")
		err := liberr.CodeConfig.Error(a, b)
		Expect(err.Unwrap()).To(HaveLen(2))
	})
})
