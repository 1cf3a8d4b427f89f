package blkdev

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// lsblk raw output columns, in order.
const lsblkColumns = "NAME,FSTYPE,LABEL,UUID,PARTUUID,PARTLABEL,MOUNTPOINT"

const lsblkFieldCount = 7

// Device is one block device as reported by lsblk.
type Device struct {
	Name       string
	FSType     string
	Label      string
	UUID       string
	PartUUID   string
	PartLabel  string
	MountPoint string
}

// List runs lsblk and returns every block device it reports, including
// devices with no filesystem. Requires lsblk on PATH.
func List(ctx context.Context) ([]Device, error) {
	out, err := exec.CommandContext(ctx, "lsblk", "-rno", lsblkColumns).Output()
	if err != nil {
		return nil, fmt.Errorf("lsblk: %w", err)
	}
	return parseList(string(out)), nil
}

// parseList parses lsblk -r output: one device per line, space-separated
// fields with \xNN hex escapes, empty fields present but empty. Lines with
// fewer fields than requested are skipped rather than failing the listing,
// so output drift in one row cannot take down a whole run.
func parseList(out string) []Device {
	var devs []Device
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, " ")
		if len(fields) < lsblkFieldCount {
			continue
		}
		devs = append(devs, Device{
			Name:       decodeUdev(fields[0]),
			FSType:     decodeUdev(fields[1]),
			Label:      decodeUdev(fields[2]),
			UUID:       decodeUdev(fields[3]),
			PartUUID:   decodeUdev(fields[4]),
			PartLabel:  decodeUdev(fields[5]),
			MountPoint: decodeUdev(fields[6]),
		})
	}
	return devs
}

// Pairs extracts identifier/device mappings from an lsblk listing. Every
// identifier kind maps to the device, matching what the by-uuid, by-label,
// by-partuuid, and by-partlabel trees would hold.
func Pairs(devs []Device) []Pair {
	var pairs []Pair
	for _, d := range devs {
		for _, id := range []string{d.UUID, d.Label, d.PartUUID, d.PartLabel} {
			if id != "" {
				pairs = append(pairs, Pair{ID: id, Device: d.Name})
			}
		}
	}
	return pairs
}
