// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package sysfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/ironcore-dev/pcilist/internal/pci"
)

const (
	FieldVendor     = "vendor"
	FieldDevice     = "device"
	FieldHeaderType = "header_type"
	FieldIRQ        = "irq"
	FieldConfig     = "config"
)

var pathBusPciDevices = filepath.Join("sys", "bus", "pci", "devices")

// ResourceField returns the attribute name of BAR slot i.
func ResourceField(i int) string {
	return "resource" + strconv.Itoa(i)
}

// Reader reads raw device attributes from a PCI devices directory such as
// /sys/bus/pci/devices. It does not interpret the values beyond parsing them.
type Reader struct {
	Path string
}

// NewReader returns a Reader for the devices directory below root.
func NewReader(root string) *Reader {
	return &Reader{Path: filepath.Join(root, pathBusPciDevices)}
}

// ListAddresses returns the device addresses in the devices directory,
// sorted by name. Entries that are not directories are skipped; entries that
// cannot be resolved, like dangling symlinks, are logged and skipped.
func (r *Reader) ListAddresses(ctx context.Context) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx)

	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("PCI devices path %s is not accessible: %w", r.Path, err)
	}

	var addresses []string
	for _, entry := range entries {
		// Stat follows the symlinks sysfs uses for device nodes.
		info, err := os.Stat(filepath.Join(r.Path, entry.Name()))
		if err != nil {
			log.Error(err, "Skipping unresolvable PCI device entry", "entry", entry.Name())
			continue
		}
		if !info.IsDir() {
			continue
		}
		addresses = append(addresses, entry.Name())
	}
	return addresses, nil
}

// ReadHex reads the first line of a field as a hexadecimal value of at most
// bitSize bits.
func (r *Reader) ReadHex(address, field string, bitSize int) (uint64, error) {
	line, err := r.readLine(address, field)
	if err != nil {
		return 0, err
	}
	v, err := pci.ParseHex(line, bitSize)
	if err != nil {
		return 0, &FieldError{Address: address, Field: field, Err: ErrUnparsableField, Cause: err}
	}
	return v, nil
}

// ReadDecimal reads the first line of a field as a signed decimal value.
func (r *Reader) ReadDecimal(address, field string) (int, error) {
	line, err := r.readLine(address, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, &FieldError{Address: address, Field: field, Err: ErrUnparsableField, Cause: err}
	}
	return v, nil
}

// ReadConfigByte reads a single byte of the binary config attribute.
func (r *Reader) ReadConfigByte(address string, offset int64) (uint8, error) {
	f, err := os.Open(filepath.Join(r.Path, address, FieldConfig))
	if err != nil {
		return 0, fieldError(address, FieldConfig, err)
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return 0, &FieldError{Address: address, Field: FieldConfig, Err: ErrUnreadableField, Cause: err}
	}
	return buf[0], nil
}

func (r *Reader) readLine(address, field string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Path, address, field))
	if err != nil {
		return "", fieldError(address, field, err)
	}

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", &FieldError{Address: address, Field: field, Err: ErrEmptyField}
	}
	return line, nil
}

func fieldError(address, field string, err error) *FieldError {
	if errors.Is(err, fs.ErrNotExist) {
		return &FieldError{Address: address, Field: field, Err: ErrMissingField}
	}
	return &FieldError{Address: address, Field: field, Err: ErrUnreadableField, Cause: err}
}
