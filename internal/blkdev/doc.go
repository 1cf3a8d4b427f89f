// Package blkdev discovers block devices and their filesystem identifiers.
//
// Two discovery paths are provided. The Scan functions read the symlink
// trees udev maintains under /dev/disk/, where each link is named for a
// filesystem UUID or label or a partition UUID or label and points at the
// underlying device node. List shells out to lsblk for the same
// information plus filesystem type and mount point, which covers devices
// udev has no link for.
//
// Populate loads either result set into a dict.Dictionary keyed by
// identifier, which is how the cross-reference commands resolve the
// UUID=, LABEL=, PARTUUID= and PARTLABEL= sources found in an fstab.
package blkdev
