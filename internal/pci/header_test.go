// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ironcore-dev/pcilist/internal/pci"
)

var _ = Describe("ClassifyHeader", func() {
	DescribeTable("classifies the header layout",
		func(headerType uint8, kind pci.HeaderKind, multifunction bool) {
			Expect(pci.ClassifyHeader(headerType)).To(Equal(kind))
			Expect(pci.IsMultifunction(headerType)).To(Equal(multifunction))
		},
		Entry("normal device", uint8(0x00), pci.NonBridge, false),
		Entry("multifunction normal device", uint8(0x80), pci.NonBridge, true),
		Entry("PCI-to-PCI bridge", uint8(0x01), pci.Bridge, false),
		Entry("multifunction bridge", uint8(0x81), pci.Bridge, true),
		Entry("CardBus bridge", uint8(0x02), pci.Bridge, false),
	)

	It("ignores the multifunction bit for every header type", func() {
		for h := 0; h <= 0xFF; h++ {
			expected := pci.Bridge
			if h&0x7F == 0 {
				expected = pci.NonBridge
			}
			Expect(pci.ClassifyHeader(uint8(h))).To(Equal(expected), "header type 0x%02x", h)
			Expect(pci.ClassifyHeader(uint8(h) ^ 0x80)).To(Equal(expected), "header type 0x%02x", h^0x80)
		}
	})

	It("names the header kind", func() {
		Expect(pci.NonBridge.String()).To(Equal("Non-Bridge Device"))
		Expect(pci.Bridge.String()).To(Equal("Bridge Device"))
	})
})

var _ = Describe("Device", func() {
	It("derives header kind and multifunction flag from the header type", func() {
		device := pci.Device{Identity: pci.Identity{HeaderType: 0x81}}
		Expect(device.Header()).To(Equal(pci.Bridge))
		Expect(device.Multifunction()).To(BeTrue())

		device.HeaderType = 0x00
		Expect(device.Header()).To(Equal(pci.NonBridge))
		Expect(device.Multifunction()).To(BeFalse())
	})
})

var _ = Describe("DecodeInterruptPin", func() {
	DescribeTable("maps pin values to INTx letters",
		func(pin uint8, letter rune, ok bool) {
			l, decoded := pci.DecodeInterruptPin(pin)
			Expect(decoded).To(Equal(ok))
			Expect(l).To(Equal(letter))
		},
		Entry("no pin", uint8(0), rune(0), false),
		Entry("INTA", uint8(1), 'A', true),
		Entry("INTB", uint8(2), 'B', true),
		Entry("INTC", uint8(3), 'C', true),
		Entry("INTD", uint8(4), 'D', true),
		Entry("out of range", uint8(5), rune(0), false),
		Entry("all bits set", uint8(0xFF), rune(0), false),
	)
})

var _ = Describe("DescribeIRQ", func() {
	It("reports an unassigned line", func() {
		Expect(pci.DescribeIRQ(0)).To(Equal("Interrupt not assigned or disabled."))
	})

	It("reports an assigned line", func() {
		Expect(pci.DescribeIRQ(11)).To(Equal("Interrupt assigned to line: 11"))
	})

	It("does not validate the range", func() {
		Expect(pci.DescribeIRQ(-1)).To(Equal("Interrupt assigned to line: -1"))
	})
})
