// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ironcore-dev/pcilist/internal/metrics"
	"github.com/ironcore-dev/pcilist/internal/pci"
	"github.com/ironcore-dev/pcilist/internal/sysfs"
)

var _ = Describe("Collector", func() {
	var collector *metrics.Collector

	BeforeEach(func() {
		collector = metrics.NewCollector()
	})

	It("counts devices by header kind and BARs by space", func() {
		ioBAR, _ := pci.DecodeBAR(0xe001)
		mem, _ := pci.DecodeBAR(0xc000000c)
		collector.ObserveDevice(pci.Device{
			Identity: pci.Identity{Address: "0000:00:1f.6", VendorID: 0x8086},
			BARs: []pci.BARSlot{
				{Index: 0, Raw: ioBAR.Raw, BAR: &ioBAR},
				{Index: 1, Raw: 0},
				{Index: 2, Raw: mem.Raw, BAR: &mem},
			},
		})
		collector.ObserveDevice(pci.Device{
			Identity: pci.Identity{Address: "0000:00:1c.0", VendorID: 0x8086, HeaderType: 0x81},
		})

		Expect(testutil.GatherAndCount(collector.Registry(), "pcilist_devices")).To(Equal(2))
		Expect(testutil.GatherAndCount(collector.Registry(), "pcilist_bars")).To(Equal(2))
	})

	It("labels vendor IDs with four hex digits", func() {
		collector.ObserveDevice(pci.Device{
			Identity: pci.Identity{Address: "0000:00:05.0", VendorID: 0x00ff},
		})
		collector.ObserveDevice(pci.Device{
			Identity: pci.Identity{Address: "0000:00:1c.0", VendorID: 0x8086, HeaderType: 0x81},
		})

		Expect(testutil.GatherAndCompare(collector.Registry(), strings.NewReader(`
# HELP pcilist_devices Number of listed PCI devices by vendor and header kind.
# TYPE pcilist_devices gauge
pcilist_devices{header="Bridge Device",vendor_id="0x8086"} 1
pcilist_devices{header="Non-Bridge Device",vendor_id="0x00ff"} 1
`), "pcilist_devices")).To(Succeed())
	})

	It("labels field errors by field and reason", func() {
		collector.ObserveFieldError(&sysfs.FieldError{Address: "0000:00:1f.6", Field: "resource2", Err: sysfs.ErrUnparsableField})
		collector.ObserveFieldError(&sysfs.FieldError{Address: "0000:00:1f.6", Field: "irq", Err: sysfs.ErrMissingField})
		collector.ObserveFieldError(errors.New("boom"))

		Expect(testutil.GatherAndCount(collector.Registry(), "pcilist_field_errors_total")).To(Equal(3))
	})

	It("counts skipped devices", func() {
		collector.ObserveSkipped()
		collector.ObserveSkipped()

		count, err := testutil.GatherAndCount(collector.Registry(), "pcilist_skipped_devices_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(1))
	})

	It("writes a textfile", func() {
		collector.ObserveDevice(pci.Device{
			Identity: pci.Identity{Address: "0000:00:02.0", VendorID: 0x1af4},
		})
		path := filepath.Join(GinkgoT().TempDir(), "pcilist.prom")
		Expect(collector.WriteToTextfile(path)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`pcilist_devices{header="Non-Bridge Device",vendor_id="0x1af4"} 1`))
	})
})
