package strutil_test

import (
	"testing"

	"github.com/expensecontrol/api/internal/core/common/strutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStrutil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Strutil Suite")
}

var _ = Describe("Strutil", func() {
	Describe("SentenceCase", func() {
		It("should upper the first rune and lower the rest", func() {
			Expect(strutil.SentenceCase("alimentação")).To(Equal("Alimentação"))
			Expect(strutil.SentenceCase("TRANSPORTE")).To(Equal("Transporte"))
			Expect(strutil.SentenceCase("  lazer e hobby  ")).To(Equal("Lazer e hobby"))
		})

		It("should handle accented first runes", func() {
			Expect(strutil.SentenceCase("água")).To(Equal("Água"))
		})

		It("should pass empty input through", func() {
			Expect(strutil.SentenceCase("   ")).To(Equal(""))
		})
	})

	Describe("TitleCase", func() {
		It("should title every word", func() {
			Expect(strutil.TitleCase("cartão de crédito")).To(Equal("Cartão De Crédito"))
			Expect(strutil.TitleCase("maria da silva")).To(Equal("Maria Da Silva"))
		})
	})

	Describe("NormalizeEmail", func() {
		It("should trim and lower the address", func() {
			Expect(strutil.NormalizeEmail(" Maria.Silva@Foo.COM ")).To(Equal("maria.silva@foo.com"))
		})
	})
})
