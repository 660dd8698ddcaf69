package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/config"
)

// isolated returns options that only look at dir and never at the host's
// system, user or environment configuration.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdlive.yml"), `
flavor: gfm
id_prefix: doc
demote_headings: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, "doc", result.Config.IDPrefix)
	assert.False(t, result.Config.ShouldDemoteHeadings())
	// Unset fields keep their defaults.
	assert.Equal(t, config.DefaultActiveClass, result.Config.ActiveClass)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".mdlive.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, "mdlive.yaml"), "marker_class: mk\n")

	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, "mk", result.Config.MarkerClass)
	assert.Equal(t, filepath.Join(root, "mdlive.yaml"), result.Paths.Project)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdlive.yml"), "flavor: gfm\nactive_class: here\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "flavor: commonmark\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Equal(t, "here", result.Config.ActiveClass)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, customPath, result.LoadedFrom[1])
}

func TestLoad_CLIConfigWins(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdlive.yml"), "log_level: warn\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{LogLevel: "debug", Color: config.ColorNever}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "debug", result.Config.LogLevel)
	assert.Equal(t, config.ColorNever, result.Config.Color)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad flavor", "flavor: obsidian\n", "flavor"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"spaced class", "active_class: is active\n", "active_class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".mdlive.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, path, validationErr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdlive.yml"), "flavor: [gfm\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolated(tmpDir)
	opts.ExplicitPath = filepath.Join(tmpDir, "nope.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Environment(t *testing.T) {
	// Not parallel: t.Setenv.
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdlive.yml"), "flavor: commonmark\n")

	t.Setenv("MDLIVE_FLAVOR", "gfm")
	t.Setenv("MDLIVE_DEMOTE_HEADINGS", "0")
	t.Setenv("MDLIVE_COLOR", "always")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.False(t, result.Config.ShouldDemoteHeadings())
	assert.Equal(t, config.ColorAlways, result.Config.Color)
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("MDLIVE_DEMOTE_HEADINGS", "maybe")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDLIVE_DEMOTE_HEADINGS")
}

func TestLoad_UserConfig(t *testing.T) {
	// Not parallel: t.Setenv.
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "mdlive", "config.yaml"), "hidden_marker_class: gone\n")

	opts := isolated(t.TempDir())
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "gone", result.Config.HiddenMarkerClass)
	assert.Equal(t, filepath.Join(xdg, "mdlive", "config.yaml"), result.Paths.User)

	dir, err := UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "mdlive"), dir)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	off := false
	base := config.NewConfig()
	mid := &config.Config{Flavor: config.FlavorGFM, DemoteHeadings: &off}
	top := &config.Config{IDPrefix: "x"}

	merged := MergeAll(base, mid, top)
	assert.Equal(t, config.FlavorGFM, merged.Flavor)
	assert.Equal(t, "x", merged.IDPrefix)
	assert.False(t, merged.ShouldDemoteHeadings())
	assert.Equal(t, config.DefaultMarkerClass, merged.MarkerClass)

	// Inputs are not mutated.
	assert.True(t, base.ShouldDemoteHeadings())
	assert.Equal(t, config.DefaultIDPrefix, base.IDPrefix)
	off = true
	assert.False(t, merged.ShouldDemoteHeadings())

	assert.Nil(t, MergeAll())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.HiddenMarkerClass = cfg.MarkerClass

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, []string{
		"warning: hidden_marker_class: hidden marker class equals marker class; hidden markers cannot be styled apart",
	}, result.AllMessages())
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	assert.Equal(t, "MDLIVE_ACTIVE_CLASS", vars[0].Name)
	assert.Equal(t, "MDLIVE_FLAVOR", GetEnvVarName("flavor"))
	assert.Empty(t, GetEnvVarName("nope"))
}
