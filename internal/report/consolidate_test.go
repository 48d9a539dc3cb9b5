package report

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Consolidate", func() {
	var (
		fields   Fields
		textSubs []string
		tabular  []*TabularData
		summary  Summary
	)

	BeforeEach(func() {
		util := 42.5
		fields = Fields{CreditUtilizationPercent: &util, OpenAccounts: 4}
		textSubs = []string{"Netflix", "Spotify"}
		tabular = []*TabularData{
			{
				RentPayments:  []Record{{Description: "house rent", Amount: "20000", Date: "2024-04-01"}},
				Subscriptions: []string{"Spotify", "Hotstar"},
			},
			{
				RecurringObligations: []Record{{Description: "emi payment", Amount: "4500", Date: "2024-04-05"}},
			},
		}
	})

	JustBeforeEach(func() {
		summary = Consolidate(fields, textSubs, tabular...)
	})

	It("passes extracted fields through unchanged", func() {
		Expect(summary.CreditUtilizationPercent).To(HaveValue(Equal(42.5)))
		Expect(summary.OpenAccounts).To(Equal(4))
	})

	It("takes rent payments exclusively from the tabular side", func() {
		Expect(summary.RentPayments).To(HaveLen(1))
		Expect(summary.RentPayments[0].Description).To(Equal("house rent"))
	})

	It("takes recurring obligations exclusively from the tabular side", func() {
		Expect(summary.RecurringObligations).To(HaveLen(1))
	})

	It("unions subscriptions from both origins, sorted and deduplicated", func() {
		Expect(summary.ActiveSubscriptions).To(Equal([]string{"Hotstar", "Netflix", "Spotify"}))
	})

	It("is idempotent over the same inputs", func() {
		again := Consolidate(fields, textSubs, tabular...)
		Expect(again).To(Equal(summary))
	})

	It("is order-independent in the subscription union", func() {
		swapped := Consolidate(fields, []string{"Spotify", "Netflix"}, tabular[1], tabular[0])
		Expect(swapped.ActiveSubscriptions).To(Equal(summary.ActiveSubscriptions))
	})

	When("there is no tabular input", func() {
		BeforeEach(func() {
			tabular = nil
		})

		It("yields empty lists rather than nil", func() {
			Expect(summary.RentPayments).NotTo(BeNil())
			Expect(summary.RentPayments).To(BeEmpty())
			Expect(summary.RecurringObligations).To(BeEmpty())
		})

		It("still carries the text-origin subscriptions", func() {
			Expect(summary.ActiveSubscriptions).To(Equal([]string{"Netflix", "Spotify"}))
		})
	})
})
