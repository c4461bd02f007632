// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"

	"github.com/jaypipes/ghw"

	"github.com/ironcore-dev/pcilist/internal/pci"
)

// PCIProductData resolves product, class and driver names of PCI devices from
// the pci.ids database through ghw.
type PCIProductData struct {
	pciInfo *ghw.PCIInfo
}

// NewPCIProductData gathers PCI information below the given root directory.
func NewPCIProductData(chroot string) (*PCIProductData, error) {
	pciInfo, err := ghw.PCI(ghw.WithChroot(chroot))
	if err != nil {
		return nil, fmt.Errorf("could not get PCI info: %w", err)
	}
	return &PCIProductData{pciInfo: pciInfo}, nil
}

// Product returns the names known for the device at address, or nil if ghw
// cannot find the device.
func (p *PCIProductData) Product(address string) *pci.Product {
	if p.pciInfo == nil {
		return nil
	}
	device := p.pciInfo.GetDevice(address)
	if device == nil {
		return nil
	}

	product := &pci.Product{
		Driver:   device.Driver,
		Revision: device.Revision,
	}
	if device.Product != nil {
		product.Name = device.Product.Name
	}
	if device.Class != nil {
		product.Class = device.Class.Name
	}
	if device.Subclass != nil {
		product.Subclass = device.Subclass.Name
	}
	return product
}
