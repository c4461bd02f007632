// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

// Package sysfstest builds fake PCI device directories for tests.
package sysfstest

import (
	"os"
	"path/filepath"
)

// Device describes the attribute files of one fake device. Empty string
// attributes are written as empty files; attributes not in the map are not
// created at all.
type Device struct {
	Address    string
	Attributes map[string]string
	// Config is written as the binary config attribute when not nil.
	Config []byte
}

// DevicesPath returns the devices directory below root.
func DevicesPath(root string) string {
	return filepath.Join(root, "sys", "bus", "pci", "devices")
}

// Write creates the device directory below root and its attribute files.
func Write(root string, dev Device) error {
	dir := filepath.Join(DevicesPath(root), dev.Address)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, value := range dev.Attributes {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0644); err != nil {
			return err
		}
	}
	if dev.Config != nil {
		if err := os.WriteFile(filepath.Join(dir, "config"), dev.Config, 0644); err != nil {
			return err
		}
	}
	return nil
}

// Config returns a 64 byte type 0 configuration header with the given
// interrupt pin.
func Config(interruptPin uint8) []byte {
	config := make([]byte, 64)
	config[0x3D] = interruptPin
	return config
}
