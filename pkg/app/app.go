package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/zurustar/emobf/pkg/cli"
	"github.com/zurustar/emobf/pkg/config"
	"github.com/zurustar/emobf/pkg/dialect"
	"github.com/zurustar/emobf/pkg/logger"
	"github.com/zurustar/emobf/pkg/script"
	"github.com/zurustar/emobf/pkg/vm"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config    *cli.Config
	log       *slog.Logger
	logCloser io.Closer

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New Applicationを作成
// stdin/stdoutはプログラムの入出力、stderrはログに使う
func New(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. 設定ファイルの読み込み（フラグ・環境変数が優先）
	if err := app.loadConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 3. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer app.logCloser.Close()

	app.log.Info("Application started", "file", app.config.File)

	// 4. プログラムファイルの読み込み
	src, err := script.Load(app.config.File, app.config.Encoding)
	if err != nil {
		return fmt.Errorf("Error opening %s: %w", app.config.File, err)
	}

	app.log.Info("Program file loaded", "name", src.FileName, "size", src.Size)
	app.log.Debug("Program content preview", "name", src.FileName, "preview", truncate(src.Content, 100))

	// 5. マシンの構築（ここでデコードされる）
	machine := vm.New(src.Content,
		vm.WithLogger(app.log),
		vm.WithMaxSteps(app.config.MaxSteps),
	)
	app.checkBrackets(machine)

	// 6. 表示フラグがあれば変換して表示、なければ実行
	if app.config.Printing() {
		return app.printProgram(machine)
	}

	if err := machine.Run(app.stdin, app.stdout); err != nil {
		app.log.Error("Execution failed", "file", app.config.File, "error", err, "pc", machine.PC(), "steps", machine.Steps())
		return fmt.Errorf("Error executing %s: %w", app.config.File, err)
	}

	app.log.Info("Application terminated normally", "steps", machine.Steps())
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// loadConfig 設定ファイルの値をフラグ・環境変数で指定されていない項目に適用
// 設定ファイルが明示されていない場合はプログラムと同じディレクトリを探す
func (app *Application) loadConfig() error {
	var (
		file *config.File
		err  error
	)
	if app.config.ConfigPath != "" {
		file, err = config.Load(app.config.ConfigPath)
	} else {
		file, err = config.Find(filepath.Dir(app.config.File))
	}
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}

	if !app.config.LogLevelSet && file.Log.Level != "" {
		level := cli.NormalizeLogLevel(file.Log.Level)
		if err := cli.ValidateLogLevel(level); err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}
		app.config.LogLevel = level
	}
	if !app.config.LogFileSet && file.Log.File != "" {
		app.config.LogFile = file.Log.File
	}
	if !app.config.EncodingSet && file.Source.Encoding != "" {
		app.config.Encoding = file.Source.Encoding
	}
	if !app.config.MaxStepsSet && file.Run.MaxSteps != 0 {
		app.config.MaxSteps = file.Run.MaxSteps
	}
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	writers := []io.Writer{app.stderr}
	closer := io.Closer(nopCloser{})
	if app.config.LogFile != "" {
		f, err := logger.OpenLogFile(app.config.LogFile)
		if err != nil {
			return err
		}
		writers = append(writers, f)
		closer = f
	}

	log, err := logger.InitLoggerWithWriters(app.config.LogLevel, writers...)
	if err != nil {
		closer.Close()
		return err
	}
	app.log = log
	app.logCloser = closer
	return nil
}

// checkBrackets 括弧の数が合わない場合に警告
// 不一致のエラーは実行時にその括弧に到達した場合のみ発生する
func (app *Application) checkBrackets(machine *vm.Machine) {
	program := machine.Program()
	opens, closes := program.Brackets()
	app.log.Debug("Program decoded", "instructions", len(program), "classic", truncate(program.String(), 100))
	if opens != closes {
		app.log.Warn("Unbalanced brackets", "open", opens, "close", closes)
	}
}

// printProgram 指定された方言でプログラムを表示
func (app *Application) printProgram(machine *vm.Machine) error {
	kinds := []struct {
		enabled bool
		kind    dialect.Kind
	}{
		{app.config.PrintClassic, dialect.Classic},
		{app.config.PrintHands, dialect.Hands},
		{app.config.PrintEmoji, dialect.Random},
	}

	for _, k := range kinds {
		if !k.enabled {
			continue
		}
		if _, err := fmt.Fprintln(app.stdout, machine.Render(k.kind)); err != nil {
			return fmt.Errorf("failed to print %s program: %w", k.kind, err)
		}
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// truncate 文字列を指定したルーン数で切り詰める
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
