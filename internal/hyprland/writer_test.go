package hyprland

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanaroSch/overlay-core/internal/platform"
)

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls++
	return r.err
}

const testBindLine = "bind = SHIFT CTRL, SPACE, exec, overlay-core --toggle-overlay"

func TestWriterApplyCreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hypr")
	reloader := &countingReloader{}
	w := NewWriter(dir, reloader)

	res, err := w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)

	fragPath := filepath.Join(dir, FragmentFileName)
	mainPath := filepath.Join(dir, MainConfigFileName)
	assert.Equal(t, ApplyResult{
		BindFilePath:   fragPath,
		MainConfigPath: mainPath,
		SourceLine:     "source = " + fragPath,
		BindLine:       testBindLine,
	}, res)

	frag, err := os.ReadFile(fragPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(frag), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Equal(t, testBindLine, lines[1])

	main, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	assert.Equal(t, "\n# overlay-core hotkeys\nsource = "+fragPath+"\n", string(main))
	assert.Equal(t, 1, reloader.calls)
}

func TestWriterApplyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, MainConfigFileName)
	require.NoError(t, os.WriteFile(mainPath, []byte("monitor=,preferred,auto,1"), 0o644))
	w := NewWriter(dir, &countingReloader{})

	_, err := w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)
	frag1, _ := os.ReadFile(w.FragmentPath())
	main1, _ := os.ReadFile(mainPath)

	_, err = w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)
	frag2, _ := os.ReadFile(w.FragmentPath())
	main2, _ := os.ReadFile(mainPath)

	assert.Equal(t, frag1, frag2)
	assert.Equal(t, main1, main2)
	assert.Equal(t, 1, strings.Count(string(main2), w.SourceLine()))
	assert.True(t, strings.HasPrefix(string(main2), "monitor=,preferred,auto,1\n\n# overlay-core hotkeys\n"))
}

func TestWriterApplyOverwritesFragment(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, &countingReloader{})
	require.NoError(t, os.WriteFile(w.FragmentPath(), []byte("garbage\nmore garbage\n"), 0o644))

	_, err := w.Apply(context.Background(), "bind = SUPER, O, exec, x --toggle-overlay")
	require.NoError(t, err)

	frag, _ := os.ReadFile(w.FragmentPath())
	assert.NotContains(t, string(frag), "garbage")
	assert.Contains(t, string(frag), "bind = SUPER, O, exec, x --toggle-overlay\n")
}

func TestWriterApplyKeepsExistingSourceLine(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, &countingReloader{})
	original := "# user config\n  " + w.SourceLine() + "  \nbind = SUPER, Q, killactive\n"
	require.NoError(t, os.WriteFile(w.MainConfigPath(), []byte(original), 0o644))

	_, err := w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)

	main, _ := os.ReadFile(w.MainConfigPath())
	assert.Equal(t, original, string(main))
}

func TestWriterApplyCommentedSourceLineDoesNotCount(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, &countingReloader{})
	original := "# " + w.SourceLine() + "\n"
	require.NoError(t, os.WriteFile(w.MainConfigPath(), []byte(original), 0o644))

	_, err := w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)

	main, _ := os.ReadFile(w.MainConfigPath())
	assert.Equal(t, original+"\n# overlay-core hotkeys\n"+w.SourceLine()+"\n", string(main))
}

func TestWriterReloadFailureLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	cmd := newFakeCommander()
	cmd.set("reload", "", errors.New("exit status 1"))
	w := NewWriter(dir, NewClient(cmd))

	_, err := w.Apply(context.Background(), testBindLine)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReloadFailed)

	assert.FileExists(t, w.FragmentPath())
	main, readErr := os.ReadFile(w.MainConfigPath())
	require.NoError(t, readErr)
	assert.Contains(t, string(main), w.SourceLine())
}

func TestWriterReloadErrorIsClassified(t *testing.T) {
	w := NewWriter(t.TempDir(), &countingReloader{err: errors.New("unreachable")})
	_, err := w.Apply(context.Background(), testBindLine)
	assert.ErrorIs(t, err, ErrReloadFailed)
}

func TestWriterFilesystemFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	reloader := &countingReloader{}
	w := NewWriter(filepath.Join(blocker, "hypr"), reloader)
	_, err := w.Apply(context.Background(), testBindLine)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilesystemFailed)

	var fsErr *FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, filepath.Join(blocker, "hypr"), fsErr.Path)
	assert.Equal(t, 0, reloader.calls)
}

func TestWriterPlanDoesNotTouchDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hypr")
	w := NewWriter(dir, &countingReloader{})

	plan, err := w.Plan(testBindLine)
	require.NoError(t, err)
	assert.True(t, plan.Fragment.Changed())
	assert.True(t, plan.MainConfig.Changed())
	assert.Empty(t, plan.MainConfig.Before)
	assert.Contains(t, plan.MainConfig.After, plan.SourceLine)
	assert.NoDirExists(t, dir)

	_, err = w.Apply(context.Background(), testBindLine)
	require.NoError(t, err)
	plan, err = w.Plan(testBindLine)
	require.NoError(t, err)
	assert.False(t, plan.Fragment.Changed())
	assert.False(t, plan.MainConfig.Changed())
}

func TestConfigDir(t *testing.T) {
	tests := []struct {
		name     string
		env      platform.MapEnv
		override string
		want     string
		wantErr  bool
	}{
		{"override wins", platform.MapEnv{"XDG_CONFIG_HOME": "/x"}, "/custom/hypr", "/custom/hypr", false},
		{"xdg config home", platform.MapEnv{"XDG_CONFIG_HOME": "/x", "HOME": "/home/u"}, "", filepath.Join("/x", "hypr"), false},
		{"home fallback", platform.MapEnv{"HOME": "/home/u"}, "", filepath.Join("/home/u", ".config", "hypr"), false},
		{"empty xdg falls back", platform.MapEnv{"XDG_CONFIG_HOME": "", "HOME": "/home/u"}, "", filepath.Join("/home/u", ".config", "hypr"), false},
		{"nothing set", platform.MapEnv{}, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfigDir(tt.env, tt.override)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFilesystemFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriterUnresolvedDirectory(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	reloader := &countingReloader{}
	w := NewWriterFor(platform.MapEnv{}, "", reloader)
	require.Error(t, w.Err())

	_, err := w.Apply(context.Background(), testBindLine)
	require.ErrorIs(t, err, ErrFilesystemFailed)
	var fsErr *FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, "resolve", fsErr.Op)

	_, err = w.Plan(testBindLine)
	require.ErrorIs(t, err, ErrFilesystemFailed)

	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, reloader.calls)

	resolved := NewWriterFor(platform.MapEnv{}, cwd, reloader)
	require.NoError(t, resolved.Err())
	assert.Equal(t, filepath.Join(cwd, FragmentFileName), resolved.FragmentPath())
}
