// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import "fmt"

// InterruptPinOffset is the offset of the interrupt pin byte in the
// configuration space.
const InterruptPinOffset = 0x3D

// Interrupt holds the raw interrupt configuration of a device. A nil field
// could not be read.
type Interrupt struct {
	Line *int
	Pin  *uint8
}

// DecodeInterruptPin maps pin values 1..4 to the letters A..D.
func DecodeInterruptPin(pin uint8) (rune, bool) {
	if pin < 1 || pin > 4 {
		return 0, false
	}
	return rune('A' + pin - 1), true
}

// DescribeIRQ describes the interrupt line as reported by the kernel.
func DescribeIRQ(line int) string {
	if line == 0 {
		return "Interrupt not assigned or disabled."
	}
	return fmt.Sprintf("Interrupt assigned to line: %d", line)
}
