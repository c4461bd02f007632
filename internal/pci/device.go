// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

// Identity identifies a device found in the device directory.
type Identity struct {
	Address    string
	VendorID   uint16
	DeviceID   uint16
	HeaderType uint8
}

// Product carries optional names resolved from the pci.ids database.
type Product struct {
	Name     string `json:"name,omitempty"`
	Class    string `json:"class,omitempty"`
	Subclass string `json:"subclass,omitempty"`
	Driver   string `json:"driver,omitempty"`
	Revision string `json:"revision,omitempty"`
}

// Device is the decoded view of one PCI function.
type Device struct {
	Identity
	VendorName string
	Product    *Product
	// BARs and Interrupt are only decoded for non-bridge devices.
	BARs      []BARSlot
	Interrupt *Interrupt
}

// Header classifies the header layout of the device.
func (d Device) Header() HeaderKind {
	return ClassifyHeader(d.HeaderType)
}

// Multifunction reports whether the device has more than one function.
func (d Device) Multifunction() bool {
	return IsMultifunction(d.HeaderType)
}
