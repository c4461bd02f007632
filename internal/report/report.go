// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"fmt"
	"io"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/ironcore-dev/pcilist/internal/pci"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type Printer interface {
	Print(w io.Writer, devices []pci.Device) error
}

// NewPrinter returns the printer for an output format.
func NewPrinter(format string) (Printer, error) {
	switch format {
	case FormatText, "":
		return TextPrinter{}, nil
	case FormatYAML:
		return YAMLPrinter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// TextPrinter prints one indented block per device.
type TextPrinter struct{}

func (TextPrinter) Print(w io.Writer, devices []pci.Device) error {
	var buf bytes.Buffer
	for _, d := range devices {
		writeDevice(&buf, d)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeDevice(buf *bytes.Buffer, d pci.Device) {
	fmt.Fprintf(buf, "Address: %s\n", d.Address)
	fmt.Fprintf(buf, "  Vendor ID: 0x%04x\n", d.VendorID)
	fmt.Fprintf(buf, "  Device ID: 0x%04x\n", d.DeviceID)
	fmt.Fprintf(buf, "  Manufacturer: %s\n", d.VendorName)
	if p := d.Product; p != nil {
		if p.Name != "" {
			fmt.Fprintf(buf, "  Product: %s\n", p.Name)
		}
		if p.Class != "" {
			fmt.Fprintf(buf, "  Class: %s\n", className(p))
		}
		if p.Driver != "" {
			fmt.Fprintf(buf, "  Driver: %s\n", p.Driver)
		}
	}

	multifunction := ""
	if d.Multifunction() {
		multifunction = ", multifunction"
	}
	fmt.Fprintf(buf, "  Header Type: 0x%02x (%s%s)\n", d.HeaderType, d.Header(), multifunction)

	for _, slot := range d.BARs {
		if slot.BAR == nil {
			fmt.Fprintf(buf, "  BAR%d value is 0 (no resource allocated)\n", slot.Index)
			continue
		}
		bar := slot.BAR
		fmt.Fprintf(buf, "  BAR%d: 0x%x\n", bar.Index, bar.Raw)
		fmt.Fprintf(buf, "    Type: %s\n", bar.Space)
		if bar.Space == pci.SpaceMemory {
			fmt.Fprintf(buf, "    Prefetchable: %s\n", yesNo(bar.Prefetchable))
		}
		fmt.Fprintf(buf, "    Address: 0x%x\n", bar.Address)
	}

	if irq := d.Interrupt; irq != nil {
		if irq.Line != nil {
			fmt.Fprintf(buf, "  Interrupt Line: %d\n", *irq.Line)
			fmt.Fprintf(buf, "    %s\n", pci.DescribeIRQ(*irq.Line))
		}
		if irq.Pin != nil {
			if letter, ok := pci.DecodeInterruptPin(*irq.Pin); ok {
				fmt.Fprintf(buf, "  Interrupt Pin: INT%c#\n", letter)
			} else {
				buf.WriteString("  Interrupt Pin: Not used or invalid value\n")
			}
		}
	}
	buf.WriteString("\n")
}

func className(p *pci.Product) string {
	if p.Subclass == "" {
		return p.Class
	}
	return p.Class + " / " + p.Subclass
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// YAMLPrinter prints the devices as a YAML list.
type YAMLPrinter struct{}

type deviceView struct {
	Address       string         `json:"address"`
	VendorID      string         `json:"vendorID"`
	DeviceID      string         `json:"deviceID"`
	Vendor        string         `json:"vendor"`
	Product       *pci.Product   `json:"product,omitempty"`
	HeaderType    string         `json:"headerType"`
	Header        pci.HeaderKind `json:"header"`
	Multifunction bool           `json:"multifunction"`
	BARs          []barView      `json:"bars,omitempty"`
	Interrupt     *irqView       `json:"interrupt,omitempty"`
}

type barView struct {
	Index        int        `json:"index"`
	Raw          string     `json:"raw"`
	Allocated    bool       `json:"allocated"`
	Space        *pci.Space `json:"space,omitempty"`
	Prefetchable *bool      `json:"prefetchable,omitempty"`
	Address      string     `json:"address,omitempty"`
}

type irqView struct {
	Line *int   `json:"line,omitempty"`
	Pin  string `json:"pin,omitempty"`
}

func (YAMLPrinter) Print(w io.Writer, devices []pci.Device) error {
	views := make([]deviceView, 0, len(devices))
	for _, d := range devices {
		views = append(views, newDeviceView(d))
	}
	data, err := yaml.Marshal(views)
	if err != nil {
		return fmt.Errorf("failed to marshal devices: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func newDeviceView(d pci.Device) deviceView {
	view := deviceView{
		Address:       d.Address,
		VendorID:      fmt.Sprintf("0x%04x", d.VendorID),
		DeviceID:      fmt.Sprintf("0x%04x", d.DeviceID),
		Vendor:        d.VendorName,
		Product:       d.Product,
		HeaderType:    fmt.Sprintf("0x%02x", d.HeaderType),
		Header:        d.Header(),
		Multifunction: d.Multifunction(),
	}

	for _, slot := range d.BARs {
		bv := barView{Index: slot.Index, Raw: fmt.Sprintf("0x%x", slot.Raw)}
		if bar := slot.BAR; bar != nil {
			bv.Allocated = true
			bv.Space = ptr.To(bar.Space)
			bv.Address = fmt.Sprintf("0x%x", bar.Address)
			if bar.Space == pci.SpaceMemory {
				bv.Prefetchable = ptr.To(bar.Prefetchable)
			}
		}
		view.BARs = append(view.BARs, bv)
	}

	if irq := d.Interrupt; irq != nil {
		iv := &irqView{Line: irq.Line}
		if letter, ok := pci.DecodeInterruptPin(ptr.Deref(irq.Pin, 0)); ok {
			iv.Pin = fmt.Sprintf("INT%c#", letter)
		}
		view.Interrupt = iv
	}
	return view
}
