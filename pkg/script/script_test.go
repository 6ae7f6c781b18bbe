package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestLoad_UTF8(t *testing.T) {
	content := "++++ 足す\n👆🤌 😀🐶\n"
	path := writeFile(t, "test.bf", []byte(content))

	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.FileName != "test.bf" {
		t.Errorf("expected filename 'test.bf', got %q", s.FileName)
	}
	if s.Content != content {
		t.Errorf("expected content %q, got %q", content, s.Content)
	}
	if s.Size != int64(len(content)) {
		t.Errorf("expected size %d, got %d", len(content), s.Size)
	}
}

func TestLoad_UTF8BOM(t *testing.T) {
	path := writeFile(t, "bom.bf", append([]byte{0xEF, 0xBB, 0xBF}, []byte(",.")...))

	s, err := Load(path, DefaultEncoding)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// BOMは取り除かれるはず
	if s.Content != ",." {
		t.Errorf("expected %q, got %q", ",.", s.Content)
	}
}

func TestLoad_UTF16BOM(t *testing.T) {
	original := "👆👆🤜👉🤛🤌"
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, _, err := transform.String(encoder, original)
	if err != nil {
		t.Fatalf("failed to encode UTF-16: %v", err)
	}
	path := writeFile(t, "utf16.bf", []byte(encoded))

	// エンコーディング指定なしでもBOMからUTF-16と判別される
	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Content != original {
		t.Errorf("expected %q, got %q", original, s.Content)
	}
}

func TestLoad_ShiftJIS(t *testing.T) {
	original := "こんにちは +++[>++<-]>."
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), original)
	if err != nil {
		t.Fatalf("failed to encode Shift-JIS: %v", err)
	}
	path := writeFile(t, "sjis.bf", []byte(encoded))

	s, err := Load(path, "shift_jis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Content != original {
		t.Errorf("expected %q, got %q", original, s.Content)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		encoding string
		want     string
	}{
		{"存在しないファイル", filepath.Join(dir, "missing.bf"), "", "failed to stat file"},
		{"ディレクトリ", dir, "", "is a directory"},
		{"不明なエンコーディング", writeFile(t, "ok.bf", []byte("+")), "klingon", "unknown encoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.encoding)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"utf-8", "shift_jis", "utf-16le", "windows-1252"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) returned error: %v", name, err)
		}
	}
	if _, err := Lookup("not-an-encoding"); err == nil {
		t.Error("expected error for unknown encoding, got nil")
	}
}
