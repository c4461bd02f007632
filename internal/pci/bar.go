// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

// NumBARs is the number of base address registers of a type 0 header.
const NumBARs = 6

const (
	barIOSpace      = 0x1
	barPrefetchable = 0x8

	ioAddressMask     = ^uint64(0x3)
	memoryAddressMask = ^uint64(0xF)
)

// Space is the address space a BAR decodes into.
type Space int

const (
	SpaceIO Space = iota
	SpaceMemory
)

func (s Space) String() string {
	switch s {
	case SpaceIO:
		return "I/O Space"
	case SpaceMemory:
		return "Memory Space"
	default:
		return "Unknown Space"
	}
}

func (s Space) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BAR is a decoded base address register.
type BAR struct {
	Index        int    `json:"index"`
	Raw          uint64 `json:"raw"`
	Space        Space  `json:"space"`
	Prefetchable bool   `json:"prefetchable"`
	Address      uint64 `json:"address"`
}

// DecodeBAR interprets a raw BAR value. It returns false for 0, which means
// no resource is allocated. Any other value decodes, aligned or not.
func DecodeBAR(raw uint64) (BAR, bool) {
	if raw == 0 {
		return BAR{}, false
	}

	if raw&barIOSpace != 0 {
		return BAR{
			Raw:     raw,
			Space:   SpaceIO,
			Address: raw & ioAddressMask,
		}, true
	}

	return BAR{
		Raw:          raw,
		Space:        SpaceMemory,
		Prefetchable: raw&barPrefetchable != 0,
		Address:      raw & memoryAddressMask,
	}, true
}

// BARSlot is the state of one BAR slot that had a value to read.
type BARSlot struct {
	Index int
	Raw   uint64
	// BAR is nil when the slot holds 0.
	BAR *BAR
}

// DecodeBARs decodes every slot that has a value. Slots without a value are
// left out of the result.
func DecodeBARs(values [NumBARs]*uint64) []BARSlot {
	var slots []BARSlot
	for i, raw := range values {
		if raw == nil {
			continue
		}
		slot := BARSlot{Index: i, Raw: *raw}
		if bar, ok := DecodeBAR(*raw); ok {
			bar.Index = i
			slot.BAR = &bar
		}
		slots = append(slots, slot)
	}
	return slots
}
