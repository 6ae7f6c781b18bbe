// Package config handles the optional emobf.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zurustar/emobf/pkg/fileutil"
)

// FileName は設定ファイルの既定名
const FileName = "emobf.toml"

// File は設定ファイルの内容を保持する
type File struct {
	Source Source `toml:"source"`
	Run    Run    `toml:"run"`
	Log    Log    `toml:"log"`

	// Path は読み込んだファイルのパス（読み込み時に設定）
	Path string `toml:"-"`
}

// Source はプログラムファイルの読み込み設定
type Source struct {
	Encoding string `toml:"encoding"`
}

// Run は実行設定
type Run struct {
	MaxSteps int64 `toml:"max_steps"`
}

// Log はログ設定
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Load 設定ファイルを読み込む
// 未知のキーはエラーにする（typoを見逃さないため）
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	f, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse TOML文字列を解析する
func Parse(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if f.Run.MaxSteps < 0 {
		return nil, fmt.Errorf("run.max_steps must be non-negative, got %d", f.Run.MaxSteps)
	}

	return &f, nil
}

// Find dirにある設定ファイル（大文字小文字を無視）を読み込む
// ファイルまたはディレクトリがない場合はnil, nilを返す
func Find(dir string) (*File, error) {
	path, err := fileutil.FindFileCaseInsensitive(dir, FileName)
	if err != nil {
		if errors.Is(err, fileutil.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Load(path)
}
