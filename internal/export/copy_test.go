// internal/export/copy_test.go
package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "Player.cs")
	content := []byte("class Player {}")
	if err := os.WriteFile(srcPath, content, 0644); err != nil {
		t.Fatalf("create source: %v", err)
	}

	dstPath := filepath.Join(dstDir, "Player.cs")
	size, err := CopyFile(srcPath, dstPath)
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}

	got, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(got) != string(content) {
		t.Error("content mismatch")
	}
}

func TestCopyFile_CreatesDirectory(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "Player.cs")
	if err := os.WriteFile(srcPath, []byte("content"), 0644); err != nil {
		t.Fatalf("create source: %v", err)
	}

	// Destination in nested directory that doesn't exist
	dstPath := filepath.Join(dstDir, "nested", "deep", "Player.cs")
	if _, err := CopyFile(srcPath, dstPath); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	if _, err := os.Stat(dstPath); os.IsNotExist(err) {
		t.Error("destination file should exist")
	}
}

func TestCopyFile_Overwrites(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "Player.cs")
	if err := os.WriteFile(srcPath, []byte("new"), 0644); err != nil {
		t.Fatalf("create source: %v", err)
	}
	dstPath := filepath.Join(dstDir, "Player.cs")
	if err := os.WriteFile(dstPath, []byte("older and longer"), 0644); err != nil {
		t.Fatalf("create existing: %v", err)
	}

	if _, err := CopyFile(srcPath, dstPath); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, _ := os.ReadFile(dstPath)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestCopyFile_SourceNotFound(t *testing.T) {
	_, err := CopyFile("/nonexistent/Player.cs", filepath.Join(t.TempDir(), "Player.cs"))
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestCopyRun_RejectsSecondWrite(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "Player.cs")
	if err := os.WriteFile(srcPath, []byte("x"), 0644); err != nil {
		t.Fatalf("create source: %v", err)
	}

	run := newCopyRun()
	if err := run.copy(srcPath, filepath.Join(dstDir, "Player.cs")); err != nil {
		t.Fatalf("first copy: %v", err)
	}
	err := run.copy(srcPath, filepath.Join(dstDir, "Player.cs"))
	if !errors.Is(err, ErrDestinationExists) {
		t.Errorf("expected ErrDestinationExists, got %v", err)
	}
	if run.files != 1 || run.bytes != 1 {
		t.Errorf("files=%d bytes=%d, want 1/1", run.files, run.bytes)
	}
}

func TestPrepareDestination(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	// Created when missing
	if err := prepareDestination(dir); err != nil {
		t.Fatalf("prepareDestination: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("destination not created: %v", err)
	}

	for _, p := range []string{"a.txt", ".hidden", "sub/b.txt", ".git/HEAD"} {
		full := filepath.Join(dir, p)
		_ = os.MkdirAll(filepath.Dir(full), 0755)
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := prepareDestination(dir); err != nil {
		t.Fatalf("prepareDestination: %v", err)
	}

	for _, p := range []string{"a.txt", "sub"} {
		if _, err := os.Stat(filepath.Join(dir, p)); !os.IsNotExist(err) {
			t.Errorf("%s should be removed", p)
		}
	}
	for _, p := range []string{".hidden", ".git/HEAD"} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("%s should survive: %v", p, err)
		}
	}
}
