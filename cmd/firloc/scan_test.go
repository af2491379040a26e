package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Top.fir")
	content := "circuit Top :\n  wire x // @[/tmp/A.scala:10:3, :11:{4,9}]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := scanFile(&out, path); err != nil {
		t.Fatalf("scanFile failed: %v", err)
	}

	got := out.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != path+":2:13" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "/tmp/A.scala:10:3" {
		t.Errorf("first locator = %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "/tmp/A.scala:11:{4,9}" {
		t.Errorf("second locator = %q", lines[2])
	}
}

func TestScanFileRelativeLocator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Top.fir")
	if err := os.WriteFile(path, []byte("x // @[Alu.scala:1:2]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := scanFile(&out, path); err != nil {
		t.Fatalf("scanFile failed: %v", err)
	}
	want := filepath.Join(dir, "Alu.scala") + ":1:2"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output %q should contain %q", out.String(), want)
	}
}

func TestScanFileMissing(t *testing.T) {
	var out bytes.Buffer
	if err := scanFile(&out, filepath.Join(t.TempDir(), "nope.fir")); err == nil {
		t.Error("scanFile should fail for a missing file")
	}
}
