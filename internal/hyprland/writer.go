package hyprland

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/TanaroSch/overlay-core/internal/platform"
)

const (
	fragmentHeader = "# Managed by overlay-core. This file is overwritten whenever the hotkey is applied."
	sourceComment  = "# overlay-core hotkeys"
)

// Reloader asks the window manager to re-read its configuration.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ApplyResult is the audit record of a successful apply. The durable state
// is the files on disk.
type ApplyResult struct {
	BindFilePath   string `json:"bindFilePath"`
	MainConfigPath string `json:"mainConfigPath"`
	SourceLine     string `json:"sourceLine"`
	BindLine       string `json:"bindLine"`
}

// FileChange is the current and would-be content of one config file.
type FileChange struct {
	Path   string
	Before string
	After  string
}

// Changed reports whether applying would modify the file.
func (c FileChange) Changed() bool { return c.Before != c.After }

// Plan describes what Apply would write, computed without touching disk.
type Plan struct {
	Fragment   FileChange
	MainConfig FileChange
	SourceLine string
	BindLine   string
}

// Writer merges a bind line into the Hyprland configuration directory.
type Writer struct {
	Dir      string
	Reloader Reloader

	dirErr error
}

// NewWriter returns a writer for dir that reloads through r.
func NewWriter(dir string, r Reloader) *Writer {
	return &Writer{Dir: dir, Reloader: r}
}

// NewWriterFor resolves the config directory from env and override. When
// that fails the writer is still returned and Apply and Plan report the
// resolution error instead of touching disk.
func NewWriterFor(env platform.Env, override string, r Reloader) *Writer {
	dir, err := ConfigDir(env, override)
	if err != nil {
		slog.Debug("Hyprland config directory unavailable", "error", err)
	}
	return &Writer{Dir: dir, Reloader: r, dirErr: err}
}

// Err returns the error from resolving the config directory, if any.
func (w *Writer) Err() error { return w.dirErr }

// FragmentPath returns the absolute path of the managed fragment file.
func (w *Writer) FragmentPath() string {
	return filepath.Join(w.Dir, FragmentFileName)
}

// MainConfigPath returns the path of hyprland.conf.
func (w *Writer) MainConfigPath() string {
	return filepath.Join(w.Dir, MainConfigFileName)
}

// SourceLine returns the line that makes hyprland.conf include the fragment.
func (w *Writer) SourceLine() string {
	return "source = " + w.FragmentPath()
}

// Apply overwrites the fragment with bindLine, makes sure hyprland.conf
// sources it and reloads Hyprland. Files written before a failure are left
// in place.
func (w *Writer) Apply(ctx context.Context, bindLine string) (ApplyResult, error) {
	if w.dirErr != nil {
		return ApplyResult{}, w.dirErr
	}
	result := ApplyResult{
		BindFilePath:   w.FragmentPath(),
		MainConfigPath: w.MainConfigPath(),
		SourceLine:     w.SourceLine(),
		BindLine:       bindLine,
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return ApplyResult{}, &FSError{Op: "create directory", Path: w.Dir, Err: err}
	}
	if err := os.WriteFile(result.BindFilePath, []byte(fragmentContent(bindLine)), 0o644); err != nil {
		return ApplyResult{}, &FSError{Op: "write", Path: result.BindFilePath, Err: err}
	}

	main, err := readOptional(result.MainConfigPath)
	if err != nil {
		return ApplyResult{}, err
	}
	if merged, changed := mergeSourceLine(main, result.SourceLine); changed {
		if err := os.WriteFile(result.MainConfigPath, []byte(merged), 0o644); err != nil {
			return ApplyResult{}, &FSError{Op: "write", Path: result.MainConfigPath, Err: err}
		}
		slog.Info("Hyprland: added source line to main config", "path", result.MainConfigPath)
	}

	if w.Reloader != nil {
		if err := w.Reloader.Reload(ctx); err != nil {
			if !errors.Is(err, ErrReloadFailed) {
				err = errors.Join(ErrReloadFailed, err)
			}
			return ApplyResult{}, err
		}
	}

	slog.Info("Hyprland: applied hotkey binding", "fragment", result.BindFilePath, "bind", bindLine)
	return result, nil
}

// Plan computes the changes Apply would make for bindLine.
func (w *Writer) Plan(bindLine string) (Plan, error) {
	if w.dirErr != nil {
		return Plan{}, w.dirErr
	}
	fragPath := w.FragmentPath()
	mainPath := w.MainConfigPath()

	fragBefore, err := readOptional(fragPath)
	if err != nil {
		return Plan{}, err
	}
	mainBefore, err := readOptional(mainPath)
	if err != nil {
		return Plan{}, err
	}
	mainAfter, _ := mergeSourceLine(mainBefore, w.SourceLine())

	return Plan{
		Fragment:   FileChange{Path: fragPath, Before: fragBefore, After: fragmentContent(bindLine)},
		MainConfig: FileChange{Path: mainPath, Before: mainBefore, After: mainAfter},
		SourceLine: w.SourceLine(),
		BindLine:   bindLine,
	}, nil
}

func fragmentContent(bindLine string) string {
	return fragmentHeader + "\n" + bindLine + "\n"
}

// mergeSourceLine appends the source block unless a line equal to
// sourceLine (ignoring surrounding whitespace) already exists.
func mergeSourceLine(main, sourceLine string) (string, bool) {
	for _, line := range strings.Split(main, "\n") {
		if strings.TrimSpace(line) == sourceLine {
			return main, false
		}
	}
	if main != "" && !strings.HasSuffix(main, "\n") {
		main += "\n"
	}
	return main + "\n" + sourceComment + "\n" + sourceLine + "\n", true
}

// readOptional returns the file content, or "" when it does not exist.
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &FSError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}
