package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"littleprince/internal/config"
	"littleprince/internal/daypart"
	"littleprince/internal/dispatch"
	"littleprince/internal/host"
	"littleprince/internal/notify"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config keeping all state under a temp dir and
// with the desktop notifier switched off.
func writeTestConfig(t *testing.T) (configPath, dataDir string) {
	t.Helper()
	return writeTestConfigWith(t, false)
}

// writeTestConfigWith is writeTestConfig with the notifier switch set.
func writeTestConfigWith(t *testing.T, enabled bool) (configPath, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	configPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("data_dir: %s\nnotifications:\n  enabled: %t\n", dataDir, enabled)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))
	return configPath, dataDir
}

// recordingNotifier stands in for the desktop.
type recordingNotifier struct {
	shown []notify.Notification
	err   error
}

func (r *recordingNotifier) Show(n notify.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.shown = append(r.shown, n)
	return nil
}

func (r *recordingNotifier) IsSupported() bool { return true }
func (r *recordingNotifier) Close() error      { return nil }

// useNotifier makes openEnv build rec instead of the platform notifier.
func useNotifier(t *testing.T, rec *recordingNotifier) {
	t.Helper()
	orig := newNotifier
	newNotifier = func(notify.Options) notify.Notifier { return rec }
	t.Cleanup(func() { newNotifier = orig })
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPermissionCommands(t *testing.T) {
	configPath, dataDir := writeTestConfig(t)

	out := run(t, permissionCmd(&configPath), "status")
	assert.Contains(t, out, "permission: not determined")
	assert.Contains(t, out, "asked:      false")

	out = run(t, permissionCmd(&configPath), "grant")
	assert.Contains(t, out, "permission: granted")

	reg, err := host.Open(dataDir)
	require.NoError(t, err)
	assert.True(t, reg.Granted())
	assert.True(t, reg.Prompted())

	run(t, permissionCmd(&configPath), "revoke")
	reg, err = host.Open(dataDir)
	require.NoError(t, err)
	assert.Equal(t, host.PermissionDenied, reg.Permission())

	out = run(t, permissionCmd(&configPath), "reset")
	assert.Contains(t, out, "Permission reset")
	reg, err = host.Open(dataDir)
	require.NoError(t, err)
	assert.Equal(t, host.PermissionNotDetermined, reg.Permission())
	assert.False(t, reg.Prompted())
}

func TestChannelsCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	out := run(t, channelsCmd(&configPath))
	assert.Contains(t, out, dispatch.ChannelID)
	assert.Contains(t, out, dispatch.ChannelName)
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "IMPORTANCE")
	assert.Contains(t, out, "╭")
}

func TestNotifyCommand_Granted(t *testing.T) {
	rec := &recordingNotifier{}
	useNotifier(t, rec)
	configPath, _ := writeTestConfigWith(t, true)
	run(t, permissionCmd(&configPath), "grant")

	out := run(t, notifyCmd(&configPath), "Day")
	assert.Contains(t, out, "День: Полить розу")
	require.Len(t, rec.shown, 1)
	assert.Equal(t, daypart.Day.NotificationID(), rec.shown[0].ID)
}

func TestNotifyCommand_Disabled(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	run(t, permissionCmd(&configPath), "grant")

	out := run(t, notifyCmd(&configPath), "day")
	assert.Contains(t, out, "disabled in the config")
	assert.NotContains(t, out, "Полить розу")
}

func TestNotifyCommand_NotifierFails(t *testing.T) {
	useNotifier(t, &recordingNotifier{err: errors.New("no notification server")})
	configPath, _ := writeTestConfigWith(t, true)
	run(t, permissionCmd(&configPath), "grant")

	out := run(t, notifyCmd(&configPath), "evening")
	assert.Contains(t, out, "was not shown")
	assert.NotContains(t, out, "Закрыть розу ширмой")
}

func TestNotifyCommand_Denied(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	run(t, permissionCmd(&configPath), "revoke")

	out := run(t, notifyCmd(&configPath), "night")
	assert.Contains(t, out, "nothing was shown")
	assert.NotContains(t, out, "Ночь")
}

func TestNotifyCommand_UnknownName(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	cmd := notifyCmd(&configPath)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"noon"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "morning, day, evening, night")
}

func TestConfigInit(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "littleprince", "config.yaml")

	out := run(t, configCmd(&configPath), "init")
	assert.Contains(t, out, configPath)

	cfg, err := config.LoadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Notifications, cfg.Notifications)

	cmd := configCmd(&configPath)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	run(t, configCmd(&configPath), "init", "--force")
}

func TestConfigInit_DefaultPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	var configPath string

	out := run(t, configCmd(&configPath), "path")
	want := filepath.Join(xdg, "littleprince", "config.yaml")
	assert.Equal(t, want+"\n", out)

	run(t, configCmd(&configPath), "init")
	assert.FileExists(t, want)
}

func TestVersionCommand(t *testing.T) {
	out := run(t, versionCmd())
	assert.Contains(t, out, "littleprince version dev")
}
