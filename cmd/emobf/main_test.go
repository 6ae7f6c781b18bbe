package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "emobf - An emoji-based Brainfuck interpreter") {
		t.Errorf("help output should contain title, got %q", stdout.String())
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	echo := filepath.Join(dir, "echo.bf")
	if err := os.WriteFile(echo, []byte("🐶🐭"), 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}
	underflow := filepath.Join(dir, "underflow.bf")
	if err := os.WriteFile(underflow, []byte("+<"), 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no arguments", nil, "", 1, "", "missing program file"},
		{"missing file", []string{filepath.Join(dir, "missing.bf")}, "", 1, "", "Error opening"},
		{"echo", []string{echo}, "A", 0, "A", ""},
		{"underflow", []string{underflow}, "", 1, "", "Error executing " + underflow + ": data pointer went below zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FILE", "")
			t.Setenv("EMOBF_ENCODING", "")
			t.Setenv("EMOBF_MAX_STEPS", "")

			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d (stderr %q)", tt.wantCode, code, stderr.String())
			}
			if stdout.String() != tt.wantStdout {
				t.Errorf("expected stdout %q, got %q", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("expected stderr containing %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}
