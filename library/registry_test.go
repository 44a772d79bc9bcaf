package library_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/element"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/library"
)

var _ = Describe("Registry", func() {
	It("loads the five basic gates from the embedded schema document", func() {
		r, err := library.NewBuiltins()
		Expect(err).NotTo(HaveOccurred())

		guids := []string{}
		for _, s := range r.Enumerate() {
			guids = append(guids, s.GUID)
		}
		Expect(guids).To(ContainElements(
			element.GUIDAnd, element.GUIDOr, element.GUIDXor, element.GUIDNand, element.GUIDNor,
		))
	})

	It("creates a gate instance from its GUID", func() {
		r, err := library.NewBuiltins()
		Expect(err).NotTo(HaveOccurred())

		el, err := r.Create(element.GUIDAnd, ident.New(), nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(el.GUID()).To(Equal(element.GUIDAnd))
	})

	It("reports an error for an unknown GUID", func() {
		r, err := library.NewBuiltins()
		Expect(err).NotTo(HaveOccurred())

		_, err = r.Create("logiksim.gate.unknown", ident.New(), nil, nil)
		Expect(err).To(HaveOccurred())
	})
})
