package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Defaults(t *testing.T) {
	r := NewResolver()

	eff := r.Resolve()
	assert.Equal(t, PositionBottomRight, eff.Position)
	assert.Equal(t, 3*time.Second, eff.Duration)
}

func TestResolver_OverrideWinsPerField(t *testing.T) {
	r := NewResolver()

	eff := r.Resolve(Settings{Position: PositionTopLeft})
	assert.Equal(t, PositionTopLeft, eff.Position)
	assert.Equal(t, 3*time.Second, eff.Duration, "unset field falls through to default")

	eff = r.Resolve(Settings{Duration: time.Second})
	assert.Equal(t, PositionBottomRight, eff.Position)
	assert.Equal(t, time.Second, eff.Duration)
}

func TestResolver_SetDefaultsObservedAtCallTime(t *testing.T) {
	r := NewResolver()

	r.SetDefaults(Settings{Duration: 5 * time.Second})
	eff := r.Resolve()
	assert.Equal(t, 5*time.Second, eff.Duration)
	assert.Equal(t, PositionBottomRight, eff.Position, "unset default field untouched")

	// Per-call override beats the new default.
	eff = r.Resolve(Settings{Duration: time.Second})
	assert.Equal(t, time.Second, eff.Duration)
}

func TestResolver_SetDefaultsEmptyIsNoop(t *testing.T) {
	r := NewResolver()
	before := r.Defaults()

	r.SetDefaults(Settings{})
	assert.Equal(t, before, r.Defaults())
}

func TestResolver_LaterOverrideWins(t *testing.T) {
	r := NewResolver()

	eff := r.Resolve(
		Settings{Position: PositionTopLeft, Duration: time.Second},
		Settings{Position: PositionCenter},
	)
	assert.Equal(t, PositionCenter, eff.Position)
	assert.Equal(t, time.Second, eff.Duration)
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"bottom-right", PositionBottomRight, false},
		{"bottom right", PositionBottomRight, false},
		{"Top_Left", PositionTopLeft, false},
		{" center ", PositionCenter, false},
		{"center-center", PositionCenter, false},
		{"top-center", PositionTopCenter, false},
		{"middle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPosition_Anchors(t *testing.T) {
	tests := []struct {
		pos  Position
		vert Anchor
		horz Anchor
	}{
		{PositionTopLeft, AnchorTop, AnchorLeft},
		{PositionTopCenter, AnchorTop, AnchorCenter},
		{PositionTopRight, AnchorTop, AnchorRight},
		{PositionCenterLeft, AnchorCenter, AnchorLeft},
		{PositionCenter, AnchorCenter, AnchorCenter},
		{PositionCenterRight, AnchorCenter, AnchorRight},
		{PositionBottomLeft, AnchorBottom, AnchorLeft},
		{PositionBottomCenter, AnchorBottom, AnchorCenter},
		{PositionBottomRight, AnchorBottom, AnchorRight},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			assert.Equal(t, tt.vert, tt.pos.Vertical())
			assert.Equal(t, tt.horz, tt.pos.Horizontal())
		})
	}
}

func TestPosition_OutOfDomainDegrades(t *testing.T) {
	// Not validated in the core path: unknown positions anchor
	// bottom-right instead of crashing.
	p := Position("somewhere-else")
	assert.Equal(t, AnchorBottom, p.Vertical())
	assert.Equal(t, AnchorRight, p.Horizontal())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"3s", 3 * time.Second, false},
		{"500ms", 500 * time.Millisecond, false},
		{"3000", 3 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, string(PositionBottomRight), cfg.Defaults.Position)
	assert.Equal(t, 3*time.Second, cfg.Defaults.Duration.Duration())
	assert.Equal(t, 320, cfg.Display.Width)
	assert.Equal(t, 8, cfg.Display.Gap)
	assert.Equal(t, 300*time.Millisecond, cfg.Display.Transition.Duration())
	assert.False(t, cfg.Audio.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/toastd.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Display.Width, cfg.Display.Width)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toastd.toml")

	content := `
[defaults]
position = "top-center"
duration = "1500ms"

[display]
offset_x = 24
offset_y = 24
width = 400
gap = 12
transition = "200ms"

[audio]
enabled = true
volume = 60

[audio.sounds]
error = "~/sounds/error.ogg"

[theme]
stylesheet = "/etc/toastd/custom.css"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "top-center", cfg.Defaults.Position)
	assert.Equal(t, 1500*time.Millisecond, cfg.Defaults.Duration.Duration())
	assert.Equal(t, 24, cfg.Display.OffsetX)
	assert.Equal(t, 400, cfg.Display.Width)
	assert.Equal(t, 12, cfg.Display.Gap)
	assert.Equal(t, 200*time.Millisecond, cfg.Display.Transition.Duration())
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 60, cfg.Audio.Volume)
	assert.Equal(t, "/etc/toastd/custom.css", cfg.Theme.Stylesheet)

	s := cfg.Settings()
	assert.Equal(t, PositionTopCenter, s.Position)
	assert.Equal(t, 1500*time.Millisecond, s.Duration)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toastd.toml")

	content := `
[defaults]
duration = "10s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Defaults.Duration.Duration())
	assert.Equal(t, string(PositionBottomRight), cfg.Defaults.Position)
	assert.Equal(t, 320, cfg.Display.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad position", func(c *Config) { c.Defaults.Position = "everywhere" }},
		{"width too small", func(c *Config) { c.Display.Width = 10 }},
		{"width too large", func(c *Config) { c.Display.Width = 5000 }},
		{"negative gap", func(c *Config) { c.Display.Gap = -1 }},
		{"volume out of range", func(c *Config) { c.Audio.Volume = 150 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toastd.toml")

	cfg := DefaultConfig()
	cfg.Defaults.Position = string(PositionCenter)
	cfg.Display.Gap = 4
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, string(PositionCenter), loaded.Defaults.Position)
	assert.Equal(t, 4, loaded.Display.Gap)
}
