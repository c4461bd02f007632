// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

const (
	headerLayoutMask   = 0x7F
	headerMultiFunc    = 0x80
	headerLayoutNormal = 0x00
)

type HeaderKind int

const (
	NonBridge HeaderKind = iota
	Bridge
)

func (k HeaderKind) String() string {
	if k == Bridge {
		return "Bridge Device"
	}
	return "Non-Bridge Device"
}

func (k HeaderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassifyHeader reports whether the header type byte describes a normal
// device. The multifunction bit is ignored.
func ClassifyHeader(headerType uint8) HeaderKind {
	if headerType&headerLayoutMask == headerLayoutNormal {
		return NonBridge
	}
	return Bridge
}

// IsMultifunction reports bit 7 of the header type byte.
func IsMultifunction(headerType uint8) bool {
	return headerType&headerMultiFunc != 0
}
