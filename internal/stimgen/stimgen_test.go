package stimgen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/internal/stimgen"
)

var _ = Describe("generators", func() {
	It("MakeConstGen always returns the same value", func() {
		gen := stimgen.MakeConstGen(true)
		Expect(gen()).To(BeTrue())
		Expect(gen()).To(BeTrue())
	})

	It("MakeToggleGen flips on every call starting from start", func() {
		gen := stimgen.MakeToggleGen(false)
		Expect(gen()).To(BeFalse())
		Expect(gen()).To(BeTrue())
		Expect(gen()).To(BeFalse())
	})

	It("MakePatternGen cycles through the pattern and repeats", func() {
		gen := stimgen.MakePatternGen([]bool{true, false, false})
		Expect(gen()).To(BeTrue())
		Expect(gen()).To(BeFalse())
		Expect(gen()).To(BeFalse())
		Expect(gen()).To(BeTrue())
	})

	It("MakePatternGen on an empty pattern always returns false", func() {
		gen := stimgen.MakePatternGen(nil)
		Expect(gen()).To(BeFalse())
	})

	DescribeTable("ParseSpec",
		func(spec string, want []bool) {
			gen := stimgen.ParseSpec(spec)
			got := make([]bool, len(want))
			for i := range want {
				got[i] = gen()
			}
			Expect(got).To(Equal(want))
		},
		Entry("clock toggles starting low", "clock", []bool{false, true, false}),
		Entry("0 is constant low", "0", []bool{false, false}),
		Entry("1 is constant high", "1", []bool{true, true}),
		Entry("comma-separated bits cycle as a pattern", "1,0,0", []bool{true, false, false, true}),
	)
})
