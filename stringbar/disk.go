package stringbar

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/disk"
)

// ErrDeviceNotFound is returned by a disk_usage section whose device is not
// mounted at sample time. The section renders empty; the bar keeps going.
var ErrDeviceNotFound = errors.New("device not found")

// diskProvider renders used/total space of one mounted device, matched by
// device name.
type diskProvider struct {
	name  string
	units UnitSystem

	partitions func(all bool) ([]disk.PartitionStat, error)
	usage      func(path string) (*disk.UsageStat, error)
}

func newDiskProvider(name string, units UnitSystem) *diskProvider {
	return &diskProvider{
		name:       name,
		units:      units,
		partitions: disk.Partitions,
		usage:      disk.Usage,
	}
}

func (p *diskProvider) Sample() (string, error) {
	parts, err := p.partitions(false)
	if err != nil {
		return "", errors.Wrap(err, "failed to list partitions")
	}

	for _, part := range parts {
		if part.Device != p.name {
			continue
		}

		usage, err := p.usage(part.Mountpoint)
		if err != nil {
			return "", errors.Wrapf(err, "failed to stat %q", part.Mountpoint)
		}

		return FormatByteUsage(usage.Used, usage.Total, p.units), nil
	}

	return "", errors.Wrapf(ErrDeviceNotFound, "no mounted device %q", p.name)
}

// diskTotalProvider renders used/total space summed over all mounted
// physical devices, skipping removable media unless told otherwise.
type diskTotalProvider struct {
	includeRemovables bool
	units             UnitSystem

	partitions func(all bool) ([]disk.PartitionStat, error)
	usage      func(path string) (*disk.UsageStat, error)
	removable  func(device string) bool
}

func newDiskTotalProvider(includeRemovables bool, units UnitSystem) *diskTotalProvider {
	return &diskTotalProvider{
		includeRemovables: includeRemovables,
		units:             units,
		partitions:        disk.Partitions,
		usage:             disk.Usage,
		removable:         isRemovable,
	}
}

func (p *diskTotalProvider) Sample() (string, error) {
	parts, err := p.partitions(false)
	if err != nil {
		return "", errors.Wrap(err, "failed to list partitions")
	}

	var used, total uint64
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		if _, ok := seen[part.Device]; ok {
			continue
		}
		seen[part.Device] = struct{}{}

		if !p.includeRemovables && p.removable(part.Device) {
			continue
		}

		usage, err := p.usage(part.Mountpoint)
		if err != nil {
			// A single unstattable mountpoint shouldn't blank the sum.
			continue
		}

		used += usage.Used
		total += usage.Total
	}

	return FormatByteUsage(used, total, p.units), nil
}

// isRemovable reports whether the block device behind the given device path
// is removable media, according to /sys/block. Unknown devices count as
// fixed.
func isRemovable(device string) bool {
	name := filepath.Base(device)
	if _, err := os.Stat(filepath.Join("/sys/block", name)); err == nil {
		return sysBlockRemovable(name)
	}

	// The device is a partition: strip the partition suffix to find its
	// disk (sda1 -> sda, nvme0n1p2 -> nvme0n1, mmcblk0p1 -> mmcblk0). The
	// "p" infix is only stripped after a digit so that sdp1 maps to sdp.
	name = strings.TrimRight(name, "0123456789")
	if trimmed := strings.TrimSuffix(name, "p"); trimmed != name && endsWithDigit(trimmed) {
		name = trimmed
	}
	return sysBlockRemovable(name)
}

func endsWithDigit(s string) bool {
	return s != "" && '0' <= s[len(s)-1] && s[len(s)-1] <= '9'
}

func sysBlockRemovable(name string) bool {
	b, err := os.ReadFile(filepath.Join("/sys/block", name, "removable"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(b)) == "1"
}
