// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ironcore-dev/pcilist/internal/pci"
	"github.com/ironcore-dev/pcilist/internal/sysfs"
)

// Collector records what a listing pass has seen. It owns its registry so
// that the result can be written as a node exporter textfile.
type Collector struct {
	registry *prometheus.Registry

	devices     *prometheus.GaugeVec
	bars        *prometheus.GaugeVec
	diagnostics *prometheus.CounterVec
	skipped     prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		devices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pcilist_devices",
			Help: "Number of listed PCI devices by vendor and header kind.",
		}, []string{"vendor_id", "header"}),
		bars: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pcilist_bars",
			Help: "Number of allocated base address registers by space.",
		}, []string{"space", "prefetchable"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pcilist_field_errors_total",
			Help: "Device attributes that could not be acquired.",
		}, []string{"field", "reason"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pcilist_skipped_devices_total",
			Help: "Devices skipped because a mandatory attribute was not available.",
		}),
	}
	c.registry.MustRegister(c.devices, c.bars, c.diagnostics, c.skipped)
	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveDevice(device pci.Device) {
	c.devices.WithLabelValues(hex16(device.VendorID), device.Header().String()).Inc()
	for _, slot := range device.BARs {
		if slot.BAR == nil {
			continue
		}
		c.bars.WithLabelValues(slot.BAR.Space.String(), strconv.FormatBool(slot.BAR.Prefetchable)).Inc()
	}
}

func (c *Collector) ObserveFieldError(err error) {
	field := "unknown"
	var fieldErr *sysfs.FieldError
	if errors.As(err, &fieldErr) {
		field = fieldErr.Field
	}
	c.diagnostics.WithLabelValues(field, sysfs.Reason(err)).Inc()
}

func (c *Collector) ObserveSkipped() {
	c.skipped.Inc()
}

// WriteToTextfile writes all metrics in the text exposition format.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}
