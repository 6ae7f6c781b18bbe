package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zurustar/emobf/pkg/dialect"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	File         string // プログラムファイルのパス
	PrintClassic bool   // classic方言で表示
	PrintHands   bool   // hands方言で表示
	PrintEmoji   bool   // ランダム絵文字方言で表示
	LogLevel     string // ログレベル（debug, info, warn, error）
	LogFile      string // ログファイル（空なら標準エラー出力のみ）
	ConfigPath   string // 設定ファイルのパス
	Encoding     string // ソースのエンコーディング
	MaxSteps     int64  // 実行命令数の上限（0は無制限）
	ShowHelp     bool   // ヘルプ表示フラグ

	// 明示的に指定された項目（設定ファイルより優先する）
	LogLevelSet bool
	LogFileSet  bool
	EncodingSet bool
	MaxStepsSet bool
}

// DefaultLogLevel 既定のログレベル
const DefaultLogLevel = "warn"

// Printing いずれかの表示フラグが指定されているか
func (c *Config) Printing() bool {
	return c.PrintClassic || c.PrintHands || c.PrintEmoji
}

// valueFlags 値を取るフラグ（reorderArgsで次の引数も一緒に移動する）
var valueFlags = map[string]bool{
	"l": true, "log-level": true,
	"log-file": true,
	"c":        true, "config": true,
	"e": true, "encoding": true,
	"max-steps": true,
	"print":     true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 優先順位: フラグ > 環境変数 > 設定ファイル > 既定値
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("emobf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}

	fs.BoolVar(&config.PrintClassic, "print-classic", false, "classic方言で表示")
	fs.BoolVar(&config.PrintHands, "print-hands", false, "hands方言で表示")
	fs.BoolVar(&config.PrintEmoji, "print-emoji", false, "ランダム絵文字方言で表示")
	fs.Func("print", "指定した方言で表示（classic, hands, emoji）", config.setPrint)
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", DefaultLogLevel, "ログレベル（短縮形）")
	fs.StringVar(&config.LogFile, "log-file", "", "ログファイル")
	fs.StringVar(&config.ConfigPath, "config", "", "設定ファイル")
	fs.StringVar(&config.ConfigPath, "c", "", "設定ファイル（短縮形）")
	fs.StringVar(&config.Encoding, "encoding", "", "ソースのエンコーディング")
	fs.StringVar(&config.Encoding, "e", "", "ソースのエンコーディング（短縮形）")
	fs.Int64Var(&config.MaxSteps, "max-steps", 0, "実行命令数の上限（0は無制限）")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level", "l":
			config.LogLevelSet = true
		case "log-file":
			config.LogFileSet = true
		case "encoding", "e":
			config.EncodingSet = true
		case "max-steps":
			config.MaxStepsSet = true
		}
	})

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !config.LogLevelSet {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = logLevelEnv
			config.LogLevelSet = true
		}
	}
	if !config.LogFileSet {
		if logFileEnv := os.Getenv("LOG_FILE"); logFileEnv != "" {
			config.LogFile = logFileEnv
			config.LogFileSet = true
		}
	}
	if !config.EncodingSet {
		if encodingEnv := os.Getenv("EMOBF_ENCODING"); encodingEnv != "" {
			config.Encoding = encodingEnv
			config.EncodingSet = true
		}
	}
	if !config.MaxStepsSet {
		if maxStepsEnv := os.Getenv("EMOBF_MAX_STEPS"); maxStepsEnv != "" {
			n, err := strconv.ParseInt(maxStepsEnv, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid EMOBF_MAX_STEPS: %s", maxStepsEnv)
			}
			config.MaxSteps = n
			config.MaxStepsSet = true
		}
	}

	// 上限の検証
	if config.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must be non-negative, got %d", config.MaxSteps)
	}

	// ログレベルの検証（フラグ・環境変数とも大文字小文字を区別しない）
	config.LogLevel = NormalizeLogLevel(config.LogLevel)
	if err := ValidateLogLevel(config.LogLevel); err != nil {
		return nil, err
	}

	if config.ShowHelp {
		return config, nil
	}

	// 位置引数（プログラムファイルのパス）
	switch fs.NArg() {
	case 0:
		return nil, fmt.Errorf("missing program file")
	case 1:
		config.File = fs.Arg(0)
	default:
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(fs.Args(), " "))
	}

	return config, nil
}

// setPrint --print の値を方言名として解釈し、対応する表示フラグを立てる
func (c *Config) setPrint(name string) error {
	kind, err := dialect.ParseKind(name)
	if err != nil {
		return err
	}
	switch kind {
	case dialect.Classic:
		c.PrintClassic = true
	case dialect.Hands:
		c.PrintHands = true
	case dialect.Random:
		c.PrintEmoji = true
	}
	return nil
}

// NormalizeLogLevel ログレベルを小文字にそろえる
func NormalizeLogLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// ValidateLogLevel ログレベルの検証
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" 以降はすべて位置引数
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// -l debug のように値が次の引数にある場合
			name := strings.TrimLeft(arg, "-")
			if valueFlags[name] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	// "-"で始まるファイル名がフラグとして解釈されないよう "--" で区切る
	if len(positional) == 0 {
		return flags
	}
	flags = append(flags, "--")
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `emobf - An emoji-based Brainfuck interpreter

Usage:
  emobf [options] <file>

Arguments:
  file                        プログラムファイル（classic, hands, 絵文字の各方言を混在可）

Options:
  --print-classic             読み込んだプログラムをclassic方言で表示
  --print-hands               読み込んだプログラムをhands方言で表示
  --print-emoji               読み込んだプログラムをランダム絵文字方言で表示
  --print <dialect>           指定した方言で表示（classic, hands, emoji/random、複数回指定可）
                              （表示フラグを指定した場合は実行しない）
  -c, --config <path>         設定ファイル（省略時はプログラムと同じディレクトリの emobf.toml）
  -e, --encoding <name>       ソースのエンコーディング（デフォルト: utf-8、BOMを自動判別）
  --max-steps <n>             実行命令数の上限（デフォルト: 0 = 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: warn）
  --log-file <path>           ログをファイルにも出力
  -h, --help                  このヘルプを表示

Environment Variables:
  LOG_LEVEL=<level>           ログレベル
  LOG_FILE=<path>             ログファイル
  EMOBF_ENCODING=<name>       ソースのエンコーディング
  EMOBF_MAX_STEPS=<n>         実行命令数の上限

Examples:
  emobf hello.bf                    プログラムを実行
  emobf --print-hands hello.bf      hands方言に変換して表示
  emobf --print emoji hello.bf      絵文字方言に変換して表示
  emobf hello.bf --max-steps 100000 命令数を制限して実行
  emobf -e shift_jis prog.bf        Shift_JISのソースを実行
`)
}
