package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sidconv/pkg/config"
)

// newProject creates a directory that stops the upward config search.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	path := writeConfig(t, dir, ".sidconv.yml", `
reg: 100
dat: 101
screen_profile: ansi-helpers
inject_ansi_helpers: true
scale_for_vars: [T, J]
backups:
  enabled: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 100, cfg.Reg)
	assert.Equal(t, 101, cfg.Dat)
	assert.Equal(t, config.ScreenANSIHelpers, cfg.ScreenProfile)
	assert.True(t, cfg.InjectANSIHelpers)
	assert.Equal(t, []string{"T", "J"}, cfg.ScaleForVars)
	assert.False(t, cfg.Backups.Enabled, "a file can turn a default-on option off")
	assert.Equal(t, "sidecar", cfg.Backups.Mode, "unset options keep their defaults")
	assert.Equal(t, []string{path}, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yaml", "reg: 7\n")
	sub := filepath.Join(dir, "games", "music")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, 7, result.Config.Reg)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	project := writeConfig(t, dir, ".sidconv.yml", "reg: 10\ndat: 11\n")
	custom := writeConfig(t, t.TempDir(), "custom.yml", "dat: 99\n")

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 10, result.Config.Reg)
	assert.Equal(t, 99, result.Config.Dat)
	assert.Equal(t, []string{project, custom}, result.LoadedFrom)
	assert.Equal(t, custom, result.Paths.Explicit)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "sidconv"), 0o755))
	user := writeConfig(t, filepath.Join(xdg, "sidconv"), "config.yaml", "reg: 1\ndat: 2\n")

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "dat: 3\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreEnv:          true,
	})
	require.NoError(t, err)

	assert.Equal(t, user, result.Paths.User)
	assert.Equal(t, 1, result.Config.Reg, "user config applies")
	assert.Equal(t, 3, result.Config.Dat, "project config wins over user config")
}

func TestLoad_Precedence(t *testing.T) {
	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "reg: 10\ndat: 11\nscale_for: 2\n")
	t.Setenv("SIDCONV_DAT", "21")
	t.Setenv("SIDCONV_SCALE_FOR", "3")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		CLIConfig:          &config.Config{ScaleFor: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Config.Reg, "file beats defaults")
	assert.Equal(t, 21, result.Config.Dat, "env beats file")
	assert.InDelta(t, 4.0, result.Config.ScaleFor, 1e-9, "CLI beats env")
}

func TestLoad_CLIFieldsCanSetZero(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "map_get_to_inkey: true\nreg: 50\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{MapGetToInkey: false, Reg: 0}
	opts.CLIFields = []string{keyMapGetToInkey, keyReg}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.Config.MapGetToInkey)
	assert.Equal(t, 0, result.Config.Reg)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "screen_profile: vt52\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, keyScreenProfile, validationErr.Field)
	assert.Contains(t, err.Error(), "vt52")
}

func TestLoad_BadValueReportsLine(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	path := writeConfig(t, dir, ".sidconv.yml", "reg: 212\ndat: lots\n")

	_, err := Load(context.Background(), isolated(dir))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, path, validationErr.FilePath)
	assert.Equal(t, 2, validationErr.Line)
	assert.Equal(t, keyDat, validationErr.Field)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "reg: [1,\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_NotAMapping(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "- reg\n- dat\n")

	_, err := Load(context.Background(), isolated(dir))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "mapping")
}

func TestLoad_WarningsForUnknownAndCLIOnlyOptions(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "colour: red\njobs: 4\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `unknown option "colour"`)
	assert.Contains(t, result.Warnings[1], "command-line option")
	assert.Equal(t, 0, result.Config.Jobs)
}

func TestLoad_ValidationWarningsAreReported(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "reg: 5\ndat: 5\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "both use port 5")
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeConfig(t, dir, ".sidconv.yml", "# nothing configured\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	opts := isolated(newProject(t))
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(newProject(t)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseConfig_Aliases(t *testing.T) {
	t.Parallel()

	layer, err := parseConfig("x.yml", []byte(`
reg-port: 1
screen: none
get-to-inkey: true
backups-mode: none
scale_for_vars: "T, DELAY"
`))
	require.NoError(t, err)

	assert.Equal(t, 1, layer.cfg.Reg)
	assert.Equal(t, config.ScreenNone, layer.cfg.ScreenProfile)
	assert.True(t, layer.cfg.MapGetToInkey)
	assert.Equal(t, "none", layer.cfg.Backups.Mode)
	assert.Equal(t, []string{"T", "DELAY"}, layer.cfg.ScaleForVars)
	assert.Equal(t,
		[]string{keyReg, keyScreenProfile, keyMapGetToInkey, keyBackupsMode, keyScaleForVars},
		layer.fields)
	assert.Empty(t, layer.warnings)
}

func TestParseConfig_DuplicateOption(t *testing.T) {
	t.Parallel()

	layer, err := parseConfig("x.yml", []byte("reg: 1\nreg-port: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, layer.cfg.Reg)
	assert.Equal(t, []string{keyReg}, layer.fields)
	require.Len(t, layer.warnings, 1)
	assert.Contains(t, layer.warnings[0], "using the last value")
}

func TestParseConfig_BackupsMustBeMapping(t *testing.T) {
	t.Parallel()

	_, err := parseConfig("x.yml", []byte("backups: true\n"))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, keyBackups, validationErr.Field)
}
