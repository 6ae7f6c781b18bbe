package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding 既定のソースエンコーディング
const DefaultEncoding = "utf-8"

// Script はプログラムファイルを表す
type Script struct {
	FileName string // ファイル名
	Path     string // 読み込んだパス
	Content  string // UTF-8に変換された内容
	Size     int64  // ファイルサイズ
}

// Load プログラムファイルを読み込み、UTF-8に変換する
// encodingが空またはutf-8の場合はBOMを見てUTF-8/UTF-16を判別する
func Load(path, encodingName string) (*Script, error) {
	// ファイル情報を取得
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	// ファイルを読み込む
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := Decode(data, encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return &Script{
		FileName: filepath.Base(path),
		Path:     path,
		Content:  content,
		Size:     info.Size(),
	}, nil
}

// Decode 指定エンコーディングのバイト列をUTF-8文字列に変換する
func Decode(data []byte, encodingName string) (string, error) {
	decoder, err := newDecoder(encodingName)
	if err != nil {
		return "", err
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", encodingName, err)
	}

	return string(utf8Data), nil
}

// newDecoder エンコーディング名からデコーダーを作成
func newDecoder(encodingName string) (transform.Transformer, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	if name == "" || name == DefaultEncoding || name == "utf8" {
		// BOMがあればUTF-8/UTF-16として扱い、BOMは取り除く
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}

	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder(), nil
}

// Lookup WHATWGのラベル（shift_jis, utf-16le, windows-1252など）からエンコーディングを取得
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding: %s", name)
	}
	return enc, nil
}
