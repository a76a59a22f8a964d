package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastd/toastd/internal/config"
)

func TestSeverity_StyleTable(t *testing.T) {
	tests := []struct {
		severity Severity
		accent   string
		glyph    string
		icon     string
	}{
		{SeverityInfo, "#2196f3", "ℹ", "dialog-information"},
		{SeveritySuccess, "#4caf50", "✔", "emblem-default"},
		{SeverityWarn, "#ff9800", "⚠", "dialog-warning"},
		{SeverityError, "#f44336", "✖", "dialog-error"},
	}

	seenAccents := make(map[string]Severity)
	seenGlyphs := make(map[string]Severity)

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			st := tt.severity.Style()
			assert.Equal(t, tt.accent, st.Accent)
			assert.Equal(t, tt.glyph, st.Glyph)
			assert.Equal(t, tt.icon, st.Icon)
		})

		// No cross-contamination between severities.
		st := tt.severity.Style()
		if prev, dup := seenAccents[st.Accent]; dup {
			t.Fatalf("accent %s shared by %s and %s", st.Accent, prev, tt.severity)
		}
		if prev, dup := seenGlyphs[st.Glyph]; dup {
			t.Fatalf("glyph %s shared by %s and %s", st.Glyph, prev, tt.severity)
		}
		seenAccents[st.Accent] = tt.severity
		seenGlyphs[st.Glyph] = tt.severity
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "success", SeveritySuccess.String())
	assert.Equal(t, "warn", SeverityWarn.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestOffsetFor(t *testing.T) {
	tests := []struct {
		pos  config.Position
		want Offset
	}{
		{config.PositionTopLeft, Offset{X: -1, Scale: 1}},
		{config.PositionCenterLeft, Offset{X: -1, Scale: 1}},
		{config.PositionBottomLeft, Offset{X: -1, Scale: 1}},
		{config.PositionTopRight, Offset{X: 1, Scale: 1}},
		{config.PositionCenterRight, Offset{X: 1, Scale: 1}},
		{config.PositionBottomRight, Offset{X: 1, Scale: 1}},
		{config.PositionCenter, Offset{Scale: 0.5}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetFor(tt.pos))
		})
	}
}

// Horizontally centered positions at the top or bottom edge slide from
// the right, same as an explicit right anchor. This pins the current
// behavior; change it only on deliberate product intent.
func TestOffsetFor_CenteredEdgeSlidesFromRight(t *testing.T) {
	assert.Equal(t, Offset{X: 1, Scale: 1}, OffsetFor(config.PositionTopCenter))
	assert.Equal(t, Offset{X: 1, Scale: 1}, OffsetFor(config.PositionBottomCenter))
}

func TestBuild(t *testing.T) {
	n := Build(SeverityWarn, config.PositionTopLeft)

	require.NotEmpty(t, n.ID)
	assert.Equal(t, SeverityWarn, n.Severity)
	assert.Equal(t, config.PositionTopLeft, n.Position)
	assert.Equal(t, Offset{X: -1, Scale: 1}, n.Offset)
	assert.Equal(t, StateBuilt, n.State())
	assert.Empty(t, n.Title, "title is reserved for future use")
	assert.False(t, n.CreatedAt.IsZero())

	// IDs are unique per notice.
	other := Build(SeverityWarn, config.PositionTopLeft)
	assert.NotEqual(t, n.ID, other.ID)
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateBuilt, "built"},
		{StateEntering, "entering"},
		{StateHeld, "held"},
		{StateExiting, "exiting"},
		{StateDisposed, "disposed"},
		{State(9), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestNotice_SetState(t *testing.T) {
	n := Build(SeverityInfo, config.PositionBottomRight)

	for _, s := range []State{StateEntering, StateHeld, StateExiting, StateDisposed} {
		n.SetState(s)
		assert.Equal(t, s, n.State())
	}
}
