package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sepzie/SonicUX/internal/engine"
)

func TestMusicEventJSONTagging(t *testing.T) {
	tests := []struct {
		name  string
		event engine.MusicEvent
		want  map[string]any
	}{
		{
			name: "pluck",
			event: engine.MusicEvent{
				Kind: engine.EventPluck, Note: 52, Velocity: 0.65, Salience: 0.65,
			},
			want: map[string]any{
				"type": "pluck", "note": 52, "velocity": 0.65, "salience": 0.65,
			},
		},
		{
			name: "pad_chord",
			event: engine.MusicEvent{
				Kind: engine.EventPadChord, Notes: []int{36, 40, 43},
				Velocity: 0.4, Salience: 0.8,
			},
			want: map[string]any{
				"type": "pad_chord", "notes": []int{36, 40, 43},
				"velocity": 0.4, "salience": 0.8,
			},
		},
		{
			name: "cadence",
			event: engine.MusicEvent{
				Kind: engine.EventCadence, ToRoot: 7,
				ToMode: engine.ModeMixolydian, Salience: 0.9,
			},
			want: map[string]any{
				"type": "cadence", "to_root": 7,
				"to_mode": "mixolydian", "salience": 0.9,
			},
		},
		{
			name: "accent",
			event: engine.MusicEvent{
				Kind: engine.EventAccent, Strength: 0.5, Salience: 0.42,
			},
			want: map[string]any{
				"type": "accent", "strength": 0.5, "salience": 0.42,
			},
		},
		{
			name: "mute",
			event: engine.MusicEvent{
				Kind: engine.EventMute, On: true, Salience: 1.0,
			},
			want: map[string]any{
				"type": "mute", "on": true, "salience": 1.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := musicEventToJSON(tt.event)
			require.Len(t, got, len(tt.want))
			for key, want := range tt.want {
				assert.Equal(t, want, got[key], "field %s", key)
			}
		})
	}
}

func TestMusicEventsToJSONNeverNull(t *testing.T) {
	got := musicEventsToJSON(nil)
	require.NotNil(t, got, "quiet frames must serialize as [] rather than null")
	assert.Empty(t, got)
}

func TestEventRequestToEvent(t *testing.T) {
	weight := 0.25

	tests := []struct {
		name     string
		req      EventRequest
		wantKind engine.InteractionKind
		wantErr  bool
	}{
		{"click", EventRequest{Type: "click", X: 0.1, Y: 0.9, Weight: &weight}, engine.InteractionClick, false},
		{"nav", EventRequest{Type: "nav", SectionID: 3}, engine.InteractionNav, false},
		{"hover_start", EventRequest{Type: "hover_start", HoverID: 7}, engine.InteractionHoverStart, false},
		{"hover_end", EventRequest{Type: "hover_end", HoverID: 7}, engine.InteractionHoverEnd, false},
		{"unknown", EventRequest{Type: "warble"}, 0, true},
		{"empty", EventRequest{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.toEvent()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown event type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.req.X, got.X)
			assert.Equal(t, tt.req.SectionID, got.SectionID)
			assert.Equal(t, tt.req.HoverID, got.HoverID)
			if tt.req.Weight != nil {
				require.NotNil(t, got.Weight)
				assert.Equal(t, *tt.req.Weight, *got.Weight)
			}
		})
	}
}

func TestParseScaleRoot(t *testing.T) {
	root, err := parseScaleRoot("Eb")
	require.NoError(t, err)
	assert.Equal(t, 3, root)

	root, err = parseScaleRoot(float64(14))
	require.NoError(t, err)
	assert.Equal(t, 14, root, "numeric roots pass through for the engine to normalize")

	_, err = parseScaleRoot(true)
	require.Error(t, err)
}
