package fstab

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLineUUID(t *testing.T) {
	line := "UUID=0a3407de-14b1-4a7e-b352-0f2817be988a /     ext4 defaults 0 1"
	e, ok, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if !ok {
		t.Fatal("expected an entry")
	}
	if e.Kind() != SourceUUID {
		t.Errorf("expected UUID source, got %v", e.Kind())
	}
	if e.ID() != "0a3407de-14b1-4a7e-b352-0f2817be988a" {
		t.Errorf("wrong ID: %s", e.ID())
	}
	if e.File != "/" || e.VFSType != "ext4" || e.Options != "defaults" {
		t.Errorf("wrong fields: %+v", e)
	}
	if e.Freq != 0 || e.Passno != 1 {
		t.Errorf("wrong freq/passno: %d/%d", e.Freq, e.Passno)
	}
	if e.Raw != line {
		t.Error("Raw should preserve the original line")
	}
}

func TestParseLineKinds(t *testing.T) {
	cases := []struct {
		spec string
		kind SourceKind
		id   string
	}{
		{"/dev/sda1", SourceDevice, "/dev/sda1"},
		{"UUID=1234", SourceUUID, "1234"},
		{"LABEL=root", SourceLabel, "root"},
		{"PARTUUID=abcd", SourcePartUUID, "abcd"},
		{"PARTLABEL=esp", SourcePartLabel, "esp"},
	}
	for _, c := range cases {
		e, ok, err := ParseLine(c.spec + " /mnt ext4 defaults 0 2")
		if err != nil || !ok {
			t.Fatalf("ParseLine(%q): ok=%v err=%v", c.spec, ok, err)
		}
		if e.Kind() != c.kind {
			t.Errorf("%s: expected kind %v, got %v", c.spec, c.kind, e.Kind())
		}
		if e.ID() != c.id {
			t.Errorf("%s: expected ID %q, got %q", c.spec, c.id, e.ID())
		}
	}
}

func TestParseLineSkipsCommentsAndBlanks(t *testing.T) {
	for _, line := range []string{"", "   ", "# /etc/fstab", "  # indented comment"} {
		_, ok, err := ParseLine(line)
		if err != nil {
			t.Errorf("ParseLine(%q) errored: %v", line, err)
		}
		if ok {
			t.Errorf("ParseLine(%q) should not yield an entry", line)
		}
	}
}

func TestParseLineMalformed(t *testing.T) {
	for _, line := range []string{
		"UUID=1234 /mnt ext4",            // too few fields
		"UUID=1234 /mnt ext4 defaults 0 1 extra", // too many
		"UUID=1234 /mnt ext4 defaults x 1",       // bad freq
		"UUID=1234 /mnt ext4 defaults 0 y",       // bad passno
	} {
		_, _, err := ParseLine(line)
		if !errors.Is(err, ErrBadLine) {
			t.Errorf("ParseLine(%q) should fail with ErrBadLine, got %v", line, err)
		}
	}
}

func TestParseLineOptionalFreqPassno(t *testing.T) {
	e, ok, err := ParseLine("tmpfs /tmp tmpfs nosuid,nodev")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if e.Freq != 0 || e.Passno != 0 {
		t.Errorf("missing freq/passno should default to 0, got %d/%d", e.Freq, e.Passno)
	}
}

func TestUnescape(t *testing.T) {
	cases := []struct{ in, out string }{
		{"/mnt/no\\040space", "/mnt/no space"},
		{"/mnt/tab\\011here", "/mnt/tab\there"},
		{"/mnt/plain", "/mnt/plain"},
		{"trailing\\04", "trailing\\04"}, // incomplete escape passes through
		{"\\134", "\\"},
	}
	for _, c := range cases {
		if got := Unescape(c.in); got != c.out {
			t.Errorf("Unescape(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestParse(t *testing.T) {
	const sample = `# /etc/fstab: static file system information
UUID=0a3407de-14b1-4a7e-b352-0f2817be988a /     ext4 defaults        0 1
LABEL=boot                                /boot ext4 defaults        0 2

/dev/sda3 none swap defaults 0 0
`
	entries, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Kind() != SourceUUID || entries[1].Kind() != SourceLabel || entries[2].Kind() != SourceDevice {
		t.Errorf("wrong kinds: %v %v %v", entries[0].Kind(), entries[1].Kind(), entries[2].Kind())
	}
}

func TestParseReportsLineNumber(t *testing.T) {
	_, err := Parse(strings.NewReader("UUID=a / ext4 defaults 0 1\nbroken line\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected a line-2 error, got %v", err)
	}
}

func TestAnnotate(t *testing.T) {
	e, _, err := ParseLine("UUID=1234 /mnt ext4 defaults 0 2")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Annotate("sdb1"); got != e.Raw+"\t# /dev/sdb1" {
		t.Errorf("Annotate(sdb1) = %q", got)
	}
	if got := e.Annotate("/dev/sdb1"); got != e.Raw+"\t# /dev/sdb1" {
		t.Errorf("Annotate(/dev/sdb1) = %q", got)
	}
	if got := e.Annotate(""); got != e.Raw {
		t.Errorf("Annotate(\"\") should return the raw line, got %q", got)
	}
}
