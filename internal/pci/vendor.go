// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package pci

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// UnknownVendor is returned by FindVendorName when no entry matches.
const UnknownVendor = "Unknown Vendor"

type VendorEntry struct {
	ID   uint16
	Name string
}

// VendorTable is an ordered list of vendor entries. The first entry with a
// matching ID wins.
type VendorTable []VendorEntry

// FindVendorName returns the display name of the first entry matching id.
func (t VendorTable) FindVendorName(id uint16) string {
	for _, entry := range t {
		if entry.ID == id {
			return entry.Name
		}
	}
	return UnknownVendor
}

// DefaultVendorTable returns the built-in vendor table.
func DefaultVendorTable() VendorTable {
	return VendorTable{
		{ID: 0x1000, Name: "Broadcom / LSI"},
		{ID: 0x1002, Name: "Advanced Micro Devices, Inc. [AMD/ATI]"},
		{ID: 0x1013, Name: "Cirrus Logic"},
		{ID: 0x1022, Name: "Advanced Micro Devices, Inc. [AMD]"},
		{ID: 0x1028, Name: "Dell"},
		{ID: 0x102b, Name: "Matrox Electronics Systems Ltd."},
		{ID: 0x1039, Name: "Silicon Integrated Systems [SiS]"},
		{ID: 0x103c, Name: "Hewlett-Packard Company"},
		{ID: 0x104c, Name: "Texas Instruments"},
		{ID: 0x106b, Name: "Apple Inc."},
		{ID: 0x1077, Name: "QLogic Corp."},
		{ID: 0x10de, Name: "NVIDIA Corporation"},
		{ID: 0x10ec, Name: "Realtek Semiconductor Co., Ltd."},
		{ID: 0x1106, Name: "VIA Technologies, Inc."},
		{ID: 0x1137, Name: "Cisco Systems Inc"},
		{ID: 0x1180, Name: "Ricoh Co Ltd"},
		{ID: 0x11ab, Name: "Marvell Technology Group Ltd."},
		{ID: 0x1217, Name: "O2 Micro, Inc."},
		{ID: 0x1234, Name: "Technical Corp."},
		{ID: 0x126f, Name: "Silicon Motion, Inc."},
		{ID: 0x1344, Name: "Micron Technology Inc"},
		{ID: 0x1414, Name: "Microsoft Corporation"},
		{ID: 0x144d, Name: "Samsung Electronics Co Ltd"},
		{ID: 0x14e4, Name: "Broadcom Inc. and subsidiaries"},
		{ID: 0x15ad, Name: "VMware"},
		{ID: 0x15b3, Name: "Mellanox Technologies"},
		{ID: 0x168c, Name: "Qualcomm Atheros"},
		{ID: 0x1924, Name: "Solarflare Communications"},
		{ID: 0x19e5, Name: "Huawei Technologies Co., Ltd."},
		{ID: 0x1af4, Name: "Red Hat, Inc."},
		{ID: 0x1b21, Name: "ASMedia Technology Inc."},
		{ID: 0x1b36, Name: "Red Hat, Inc."},
		{ID: 0x1b4b, Name: "Marvell Technology Group Ltd."},
		{ID: 0x1c5c, Name: "SK hynix"},
		{ID: 0x1d0f, Name: "Amazon.com, Inc."},
		{ID: 0x1e0f, Name: "KIOXIA Corporation"},
		{ID: 0x8086, Name: "Intel Corporation"},
		{ID: 0x80ee, Name: "InnoTek Systemberatung GmbH"},
		{ID: 0x9005, Name: "Adaptec"},
	}
}

type vendorFile struct {
	Vendors []vendorFileEntry `json:"vendors"`
}

type vendorFileEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LoadVendorTable reads additional vendor entries from a YAML file and
// returns them followed by the entries of base.
func LoadVendorTable(path string, base VendorTable) (VendorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor file: %w", err)
	}

	file := &vendorFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendor file: %w", err)
	}

	table := make(VendorTable, 0, len(file.Vendors)+len(base))
	for _, v := range file.Vendors {
		id, err := ParseHex(v.ID, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid vendor ID %q for %q: %w", v.ID, v.Name, err)
		}
		table = append(table, VendorEntry{ID: uint16(id), Name: v.Name})
	}
	return append(table, base...), nil
}
