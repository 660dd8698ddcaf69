package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mdl", cfg.IDPrefix)
	assert.Equal(t, "active", cfg.ActiveClass)
	assert.Equal(t, "md-marker", cfg.MarkerClass)
	assert.Equal(t, "md-hide", cfg.HiddenMarkerClass)
	assert.True(t, cfg.ShouldDemoteHeadings())
	assert.Equal(t, config.ColorAuto, cfg.Color)
}

func TestShouldDemoteHeadings(t *testing.T) {
	off := false

	assert.True(t, (&config.Config{}).ShouldDemoteHeadings(), "unset means enabled")
	assert.False(t, (&config.Config{DemoteHeadings: &off}).ShouldDemoteHeadings())
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
		assert.Nil(t, clone.DemoteHeadings)
	})

	t.Run("deep copies DemoteHeadings", func(t *testing.T) {
		original := config.NewConfig()
		original.Color = config.ColorNever

		clone := original.Clone()
		require.NotNil(t, clone.DemoteHeadings)
		assert.NotSame(t, original.DemoteHeadings, clone.DemoteHeadings)
		assert.Equal(t, config.ColorNever, clone.Color)

		*clone.DemoteHeadings = false
		assert.True(t, original.ShouldDemoteHeadings())
	})
}

func TestYAML(t *testing.T) {
	t.Run("parses known keys", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
log_level: debug
flavor: gfm
id_prefix: blk
active_class: is-active
marker_class: mk
hidden_marker_class: mk-off
demote_headings: false
`))
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, "blk", cfg.IDPrefix)
		assert.Equal(t, "is-active", cfg.ActiveClass)
		assert.Equal(t, "mk", cfg.MarkerClass)
		assert.Equal(t, "mk-off", cfg.HiddenMarkerClass)
		assert.False(t, cfg.ShouldDemoteHeadings())
	})

	t.Run("absent keys stay zero", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.IDPrefix)
		assert.Nil(t, cfg.DemoteHeadings)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: [unterminated"))
		require.Error(t, err)
	})

	t.Run("CLI fields are not serialized", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Color = config.ColorAlways

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.NotContains(t, string(data), "color")
		assert.Contains(t, string(data), "flavor: commonmark")
		assert.Contains(t, string(data), "demote_headings: true")
	})

	t.Run("nil config serializes to nothing", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestGenerateTemplate(t *testing.T) {
	content, err := config.GenerateTemplate()
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "# mdlive configuration")
	assert.Contains(t, text, "id_prefix: mdl")

	parsed, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig().Clone().IDPrefix, parsed.IDPrefix)
}
