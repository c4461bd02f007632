// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package lister

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/ptr"

	"github.com/ironcore-dev/pcilist/internal/metrics"
	"github.com/ironcore-dev/pcilist/internal/pci"
	"github.com/ironcore-dev/pcilist/internal/sysfs"
)

// RecordSource acquires raw device attributes. Every call returns either a
// value or a *sysfs.FieldError.
type RecordSource interface {
	ListAddresses(ctx context.Context) ([]string, error)
	ReadHex(address, field string, bitSize int) (uint64, error)
	ReadDecimal(address, field string) (int, error)
	ReadConfigByte(address string, offset int64) (uint8, error)
}

type ProductSource interface {
	Product(address string) *pci.Product
}

type Lister struct {
	source   RecordSource
	vendors  pci.VendorTable
	products ProductSource
	metrics  *metrics.Collector
}

// New creates a Lister. products and collector may be nil.
func New(source RecordSource, vendors pci.VendorTable, products ProductSource, collector *metrics.Collector) *Lister {
	return &Lister{
		source:   source,
		vendors:  vendors,
		products: products,
		metrics:  collector,
	}
}

// List reads and decodes every device of the source, one after the other.
// Devices missing a mandatory attribute are logged and skipped. Only a
// failure to list the devices is returned.
func (l *Lister) List(ctx context.Context) ([]pci.Device, error) {
	log := logr.FromContextOrDiscard(ctx)

	addresses, err := l.source.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list PCI devices: %w", err)
	}

	devices := make([]pci.Device, 0, len(addresses))
	for _, address := range addresses {
		if ctx.Err() != nil {
			log.Info("Listing interrupted", "listed", len(devices), "total", len(addresses))
			break
		}

		device, ok := l.readDevice(log.WithValues("address", address), address)
		if !ok {
			continue
		}
		devices = append(devices, device)
	}
	return devices, nil
}

func (l *Lister) readDevice(log logr.Logger, address string) (pci.Device, bool) {
	vendorID, err := l.source.ReadHex(address, sysfs.FieldVendor, 16)
	if err != nil {
		l.skip(log, err)
		return pci.Device{}, false
	}
	deviceID, err := l.source.ReadHex(address, sysfs.FieldDevice, 16)
	if err != nil {
		l.skip(log, err)
		return pci.Device{}, false
	}

	var errs []error

	// A missing header type is read as a normal device.
	var headerType uint8
	if v, err := l.source.ReadHex(address, sysfs.FieldHeaderType, 8); err == nil {
		headerType = uint8(v)
	} else if !errors.Is(err, sysfs.ErrMissingField) {
		errs = append(errs, err)
	}

	device := pci.Device{
		Identity: pci.Identity{
			Address:    address,
			VendorID:   uint16(vendorID),
			DeviceID:   uint16(deviceID),
			HeaderType: headerType,
		},
		VendorName: l.vendors.FindVendorName(uint16(vendorID)),
	}
	if l.products != nil {
		device.Product = l.products.Product(address)
	}

	if device.Header() == pci.NonBridge {
		device.BARs, errs = l.readBARs(log, address, errs)
		device.Interrupt, errs = l.readInterrupt(address, errs)
	}

	if len(errs) > 0 {
		log.Error(utilerrors.NewAggregate(errs), "Incomplete PCI device record")
		if l.metrics != nil {
			for _, err := range errs {
				l.metrics.ObserveFieldError(err)
			}
		}
	}
	if l.metrics != nil {
		l.metrics.ObserveDevice(device)
	}
	return device, true
}

func (l *Lister) readBARs(log logr.Logger, address string, errs []error) ([]pci.BARSlot, []error) {
	var values [pci.NumBARs]*uint64
	for i := range values {
		raw, err := l.source.ReadHex(address, sysfs.ResourceField(i), 64)
		switch {
		case err == nil:
			log.V(1).Info("Read BAR", "index", i, "raw", fmt.Sprintf("0x%x", raw))
			values[i] = ptr.To(raw)
		case errors.Is(err, sysfs.ErrEmptyField):
		default:
			errs = append(errs, err)
		}
	}
	return pci.DecodeBARs(values), errs
}

func (l *Lister) readInterrupt(address string, errs []error) (*pci.Interrupt, []error) {
	interrupt := &pci.Interrupt{}

	line, err := l.source.ReadDecimal(address, sysfs.FieldIRQ)
	switch {
	case err == nil:
		interrupt.Line = ptr.To(line)
	case errors.Is(err, sysfs.ErrEmptyField):
	default:
		errs = append(errs, err)
	}

	pin, err := l.source.ReadConfigByte(address, pci.InterruptPinOffset)
	if err == nil {
		interrupt.Pin = ptr.To(pin)
	} else {
		errs = append(errs, err)
	}
	return interrupt, errs
}

func (l *Lister) skip(log logr.Logger, err error) {
	log.Error(err, "Skipping PCI device without valid vendor or device ID")
	if l.metrics != nil {
		l.metrics.ObserveSkipped()
		l.metrics.ObserveFieldError(err)
	}
}
