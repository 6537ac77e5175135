package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const appName = "overlay-core"

// DefaultMaxLogFiles is how many rotated debug logs are kept.
const DefaultMaxLogFiles = 50

// Environment overrides inherited by relayed or restarted processes.
const (
	EnvDebug       = "OVERLAY_CORE_DEBUG"
	EnvDebugFile   = "OVERLAY_CORE_DEBUG_FILE"
	EnvMaxLogFiles = "OVERLAY_CORE_MAX_LOG_FILES"
)

// Initialize installs the process-wide slog logger. Without debug, Info and
// above go to stderr as text. With debug, everything is written as JSON to
// debugFile, or to a fresh UUID-named file in the state directory whose
// older siblings are rotated out. The returned closer releases the file.
func Initialize(debug bool, debugFile string, maxLogFiles int) (io.Closer, error) {
	if os.Getenv(EnvDebug) == "1" {
		debug = true
	}
	if v := os.Getenv(EnvDebugFile); v != "" && debugFile == "" {
		debugFile = v
	}
	if v := os.Getenv(EnvMaxLogFiles); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			maxLogFiles = parsed
		}
	}

	if !debug && debugFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
		return io.NopCloser(nil), nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		logDir, err := LogDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if maxLogFiles > 0 {
			if err := rotateLogs(logDir, maxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}
		logFilePath = filepath.Join(logDir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})))
	slog.Info("Debug logging initialized", "log_file", logFilePath)
	return logFile, nil
}

// rotateLogs deletes the oldest .log files so that, with the file about to
// be created, at most maxLogFiles remain.
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logFiles []logFileInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{path: filepath.Join(logDir, entry.Name()), modTime: info.ModTime()})
	}

	if len(logFiles) < maxLogFiles {
		return nil
	}

	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.Before(logFiles[j].modTime)
	})

	excess := len(logFiles) - maxLogFiles + 1
	for _, f := range logFiles[:excess] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", f.path, err)
		}
	}
	return nil
}

// LogDir returns the per-OS directory debug logs are written to.
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", appName), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, "logs"), nil
	default:
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, appName), nil
	}
}
