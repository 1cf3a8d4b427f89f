package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fstabtools/fstabxref/dict"
	"github.com/fstabtools/fstabxref/internal/blkdev"
	"github.com/fstabtools/fstabxref/internal/fstab"
)

func seedTree(t *testing.T, uuids, labels map[string]string) discoverOpts {
	t.Helper()
	root := t.TempDir()
	opts := discoverOpts{
		byUUIDDir:      filepath.Join(root, "by-uuid"),
		byLabelDir:     filepath.Join(root, "by-label"),
		byPartUUIDDir:  filepath.Join(root, "by-partuuid"),
		byPartLabelDir: filepath.Join(root, "by-partlabel"),
	}
	for dir, links := range map[string]map[string]string{
		opts.byUUIDDir:  uuids,
		opts.byLabelDir: labels,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for id, device := range links {
			if err := os.Symlink("../../"+device, filepath.Join(dir, id)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return opts
}

func addLinks(t *testing.T, dir string, links map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for id, device := range links {
		if err := os.Symlink("../../"+device, filepath.Join(dir, id)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildDictionaryFromLinkTrees(t *testing.T) {
	opts := seedTree(t,
		map[string]string{"119a207e-0480-4298-907b-4f16a8c6316d": "sdb7"},
		map[string]string{"scratch": "sdb2"},
	)

	d, err := buildDictionary(context.Background(), opts)
	if err != nil {
		t.Fatalf("buildDictionary failed: %v", err)
	}
	defer d.Close()

	if d.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", d.Len())
	}
	if got := d.Get("scratch", notFound); got != "sdb2" {
		t.Errorf("Get(scratch) = %q", got)
	}
}

func TestXrefResolvesPartitionSources(t *testing.T) {
	opts := seedTree(t,
		map[string]string{"119a207e-0480-4298-907b-4f16a8c6316d": "sdb7"},
		nil,
	)
	addLinks(t, opts.byPartUUIDDir, map[string]string{"10e9f0e8-01": "sda1"})
	addLinks(t, opts.byPartLabelDir, map[string]string{"esp": "sda2"})

	d, err := buildDictionary(context.Background(), opts)
	if err != nil {
		t.Fatalf("buildDictionary failed: %v", err)
	}
	defer d.Close()

	const in = `PARTUUID=10e9f0e8-01 /boot vfat defaults 0 2
PARTLABEL=esp /efi vfat defaults 0 2
`
	var out bytes.Buffer
	if err := annotate(d, strings.NewReader(in), &out); err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if !strings.HasSuffix(lines[0], "\t# /dev/sda1") {
		t.Errorf("PARTUUID line not resolved: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\t# /dev/sda2") {
		t.Errorf("PARTLABEL line not resolved: %q", lines[1])
	}
	if strings.Contains(out.String(), notFound) {
		t.Errorf("partition sources should resolve:\n%s", out.String())
	}
}

func TestBuildDictionaryMissingLabelTree(t *testing.T) {
	opts := seedTree(t, map[string]string{"abcd-1234": "sda1"}, nil)
	os.RemoveAll(opts.byLabelDir)

	d, err := buildDictionary(context.Background(), opts)
	if err != nil {
		t.Fatalf("a missing by-label tree should not fail: %v", err)
	}
	defer d.Close()

	if d.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", d.Len())
	}
}

func TestAnnotate(t *testing.T) {
	d, err := dict.New(8, "uuid")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if err := d.Set("119a207e-0480-4298-907b-4f16a8c6316d", "sdb7"); err != nil {
		t.Fatal(err)
	}
	if err := d.Set("scratch", "sdb2"); err != nil {
		t.Fatal(err)
	}

	const in = `# comment stays
UUID=119a207e-0480-4298-907b-4f16a8c6316d / ext4 defaults 0 1
LABEL=scratch /scratch ext4 defaults 0 2
UUID=unknown-id /mnt ext4 defaults 0 2
/dev/sda3 none swap defaults 0 0

`
	var out bytes.Buffer
	if err := annotate(d, strings.NewReader(in), &out); err != nil {
		t.Fatalf("annotate failed: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if lines[0] != "# comment stays" {
		t.Errorf("comment changed: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\t# /dev/sdb7") {
		t.Errorf("UUID line not annotated: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "\t# /dev/sdb2") {
		t.Errorf("LABEL line not annotated: %q", lines[2])
	}
	if !strings.Contains(lines[3], notFound) {
		t.Errorf("unresolved line should carry %q: %q", notFound, lines[3])
	}
	if lines[4] != "/dev/sda3 none swap defaults 0 0" {
		t.Errorf("device line changed: %q", lines[4])
	}
	if lines[5] != "" {
		t.Errorf("blank line changed: %q", lines[5])
	}
}

func TestAnnotateMalformedLine(t *testing.T) {
	d, err := dict.New(8, "uuid")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	var out bytes.Buffer
	err = annotate(d, strings.NewReader("UUID=a /\n"), &out)
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected a line-1 error, got %v", err)
	}
}

func TestPrintDevices(t *testing.T) {
	devs := []blkdev.Device{
		{Name: "sda1", FSType: "ext4", UUID: "u-root"},
		{Name: "sdb2", FSType: "ext4", Label: "scratch", UUID: "u-scratch"},
		{Name: "sdc1", FSType: "vfat", UUID: "u-stray"},
	}
	entries := []fstab.Entry{
		{Spec: "UUID=u-root", File: "/", VFSType: "ext4"},
		{Spec: "LABEL=scratch", File: "/scratch", VFSType: "ext4"},
	}

	var out bytes.Buffer
	printDevices(&out, devs, entries)

	got := out.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 devices, got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "/") {
		t.Errorf("sda1 should map to /: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "/scratch") {
		t.Errorf("sdb2 should map to /scratch via its label: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "not found") {
		t.Errorf("sdc1 has no fstab entry: %q", lines[3])
	}
}

func TestSeedThenXref(t *testing.T) {
	root := t.TempDir()
	runSeed(root, 8, false)

	opts := discoverOpts{
		byUUIDDir:  filepath.Join(root, "disk", "by-uuid"),
		byLabelDir: filepath.Join(root, "disk", "by-label"),
	}
	d, err := buildDictionary(context.Background(), opts)
	if err != nil {
		t.Fatalf("buildDictionary failed: %v", err)
	}
	defer d.Close()

	// 8 devices, two of them labeled as well
	if d.Len() != 10 {
		t.Fatalf("expected 10 identifiers, got %d", d.Len())
	}

	in, err := os.Open(filepath.Join(root, "fstab"))
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	var out bytes.Buffer
	if err := annotate(d, in, &out); err != nil {
		t.Fatalf("annotate failed: %v", err)
	}
	if strings.Contains(out.String(), notFound) {
		t.Errorf("every generated source should resolve:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "# /dev/sda1") {
		t.Errorf("missing device annotation:\n%s", out.String())
	}
}
