package resources

import (
	_ "embed"
	"errors"
	"runtime"
)

// ErrIconNotFound is returned when the icon was not embedded at build time.
var ErrIconNotFound = errors.New("embedded icon not found")

//go:embed icon.ico
var iconICO []byte

//go:embed icon.png
var iconPNG []byte

// GetIcon returns the tray icon in the format the platform tray expects:
// ICO on Windows, PNG elsewhere.
func GetIcon() ([]byte, error) {
	data := iconPNG
	if runtime.GOOS == "windows" {
		data = iconICO
	}
	if len(data) == 0 {
		return nil, ErrIconNotFound
	}
	return data, nil
}
