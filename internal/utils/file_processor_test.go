package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/qian-o/CodeGenerator/internal/models"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := map[string]bool{
		"vm.go":                     true,
		"vm_test.go":                false,
		"autogen_vm_notify.go":      false,
		"autogen_notify_shim.go":    false,
		"README.md":                 false,
		"autogenerated_by_hand.go":  true,
		"internal_autogen_thing.go": true,
	}

	for name, want := range tests {
		if got := IsSourceFile(name); got != want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFileProcessor_DefaultFilters(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"main.go":              "package main",
		"main_test.go":         "package main",
		"autogen_vm_notify.go": "package main",
		"service.go":           "package main",
		"README.md":            "# README",
	})

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read test directory: %v", err)
	}

	var goFiles, autogenFiles []string
	goFilter := DefaultGoFileFilter()
	autogenFilter := AutogenFileFilter()
	for _, entry := range entries {
		path := filepath.Join(tmpDir, entry.Name())
		if goFilter(path, entry) {
			goFiles = append(goFiles, entry.Name())
		}
		if autogenFilter(path, entry) {
			autogenFiles = append(autogenFiles, entry.Name())
		}
	}

	if want := []string{"main.go", "service.go"}; !reflect.DeepEqual(goFiles, want) {
		t.Errorf("Go files = %v, want %v", goFiles, want)
	}
	if want := []string{"autogen_vm_notify.go"}; !reflect.DeepEqual(autogenFiles, want) {
		t.Errorf("autogen files = %v, want %v", autogenFiles, want)
	}
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"b.go":               "package root",
		"a.go":               "package root",
		"sub/c.go":           "package sub",
		"vendor/v.go":        "package v",
		".hidden/h.go":       "package h",
		"testdata/x.go":      "package x",
		"sub/deep/d_test.go": "package deep",
	})

	fp := NewFileProcessor()
	files, err := fp.WalkFiles(tmpDir, FileWalkOptions{
		FileFilter:      DefaultGoFileFilter(),
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	if err != nil {
		t.Fatalf("WalkFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "a.go"),
		filepath.Join(tmpDir, "b.go"),
		filepath.Join(tmpDir, "sub", "c.go"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("WalkFiles = %v, want %v", files, want)
	}
}

func TestFileProcessor_ScanDirectoriesWithGoFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"root.go":                            "package root",
		"models/user.go":                     "package models",
		"only_tests/x_test.go":               "package only",
		"only_generated/autogen_x_notify.go": "package only",
		"node_modules/pkg/index.go":          "package pkg",
		"views/vm/vm.go":                     "package vm",
	})

	fp := NewFileProcessor()
	dirs, err := fp.ScanDirectoriesWithGoFiles([]string{tmpDir, tmpDir})
	if err != nil {
		t.Fatalf("ScanDirectoriesWithGoFiles failed: %v", err)
	}

	want := []string{
		tmpDir,
		filepath.Join(tmpDir, "models"),
		filepath.Join(tmpDir, "views", "vm"),
	}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("directories = %v, want %v", dirs, want)
	}
}

func TestFileProcessor_ScanMissingDirectory(t *testing.T) {
	fp := NewFileProcessor()
	if _, err := fp.ScanDirectoriesWithGoFiles([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestFileProcessor_FindGeneratedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	header := models.GeneratedHeader + "\n\npackage app\n"
	writeTree(t, tmpDir, map[string]string{
		"autogen_vm_notify.go":   header,
		"autogen_notify_shim.go": header,
		"autogen_by_hand.go":     "package app\n",
		"vm.go":                  header,
		"autogen_empty.go":       "",
	})

	fp := NewFileProcessor()
	files, err := fp.FindGeneratedFiles(tmpDir)
	if err != nil {
		t.Fatalf("FindGeneratedFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "autogen_notify_shim.go"),
		filepath.Join(tmpDir, "autogen_vm_notify.go"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("generated files = %v, want %v", files, want)
	}
}

func TestFileProcessor_CleanFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"autogen_vm_notify.go": models.GeneratedHeader + "\n",
		"vm.go":                "package app\n",
	})

	fp := NewFileProcessor()
	generated := filepath.Join(tmpDir, "autogen_vm_notify.go")
	missing := filepath.Join(tmpDir, "autogen_gone_notify.go")

	removed, err := fp.CleanFiles([]string{generated, missing})
	if err == nil {
		t.Fatal("expected an error for the missing file")
	}
	if !reflect.DeepEqual(removed, []string{generated}) {
		t.Errorf("removed %v, want [%s]", removed, generated)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "vm.go")); err != nil {
		t.Errorf("vm.go should be kept: %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "autogen_vm_notify.go")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	ok, err := FileMatches(path, []byte("second"))
	if err != nil || !ok {
		t.Errorf("FileMatches = %v, %v; want true", ok, err)
	}
	ok, err = FileMatches(filepath.Join(tmpDir, "missing.go"), []byte("x"))
	if err != nil || ok {
		t.Errorf("FileMatches on missing file = %v, %v; want false", ok, err)
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}
