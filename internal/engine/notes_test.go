package engine

import (
	"testing"
)

func TestParseNoteName(t *testing.T) {
	tests := []struct {
		name        string
		note        string
		expected    int
		expectError bool
	}{
		{name: "C", note: "C", expected: 0},
		{name: "C sharp", note: "C#", expected: 1},
		{name: "D flat", note: "Db", expected: 1},
		{name: "D", note: "D", expected: 2},
		{name: "E flat", note: "Eb", expected: 3},
		{name: "E", note: "E", expected: 4},
		{name: "F", note: "F", expected: 5},
		{name: "F sharp", note: "F#", expected: 6},
		{name: "G", note: "G", expected: 7},
		{name: "A flat", note: "Ab", expected: 8},
		{name: "A", note: "A", expected: 9},
		{name: "B flat", note: "Bb", expected: 10},
		{name: "B", note: "B", expected: 11},
		{name: "unicode sharp", note: "F♯", expected: 6},
		{name: "unicode flat", note: "E♭", expected: 3},
		{name: "lowercase", note: "c", expected: 0},
		{name: "lowercase with flat", note: "bb", expected: 10},
		{name: "wraps above B", note: "B#", expected: 0},
		{name: "wraps below C", note: "Cb", expected: 11},
		{name: "surrounding whitespace", note: " F# ", expected: 6},
		{name: "empty", note: "", expectError: true},
		{name: "not a note letter", note: "H", expectError: true},
		{name: "double accidental", note: "C##", expectError: true},
		{name: "octave suffix rejected", note: "C4", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNoteName(tt.note)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q but got %d", tt.note, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseNoteName(%q) failed: %v", tt.note, err)
			}
			if got != tt.expected {
				t.Errorf("ParseNoteName(%q): expected %d, got %d", tt.note, tt.expected, got)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name        string
		tag         string
		expected    Mode
		expectError bool
	}{
		{name: "major", tag: "major", expected: ModeMajor},
		{name: "minor uppercase", tag: "MINOR", expected: ModeMinor},
		{name: "dorian", tag: "dorian", expected: ModeDorian},
		{name: "mixolydian", tag: "mixolydian", expected: ModeMixolydian},
		{name: "lydian", tag: "Lydian", expected: ModeLydian},
		{name: "phrygian", tag: "phrygian", expected: ModePhrygian},
		{name: "pentatonic major long", tag: "pentatonic_major", expected: ModePentatonicMajor},
		{name: "pentatonic major short", tag: "pent_maj", expected: ModePentatonicMajor},
		{name: "pentatonic minor long", tag: "pentatonic_minor", expected: ModePentatonicMinor},
		{name: "pentatonic minor short", tag: "pent_min", expected: ModePentatonicMinor},
		{name: "unknown", tag: "ionian", expectError: true},
		{name: "empty", tag: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.tag)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q but got %v", tt.tag, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseMode(%q) failed: %v", tt.tag, err)
			}
			if got != tt.expected {
				t.Errorf("ParseMode(%q): expected %v, got %v", tt.tag, tt.expected, got)
			}
		})
	}
}

func TestParseChordDegree(t *testing.T) {
	tests := []struct {
		name        string
		numeral     string
		expected    ChordDegree
		expectError bool
	}{
		{name: "I", numeral: "I", expected: DegreeI},
		{name: "II", numeral: "II", expected: DegreeII},
		{name: "III", numeral: "III", expected: DegreeIII},
		{name: "IV lowercase", numeral: "iv", expected: DegreeIV},
		{name: "V", numeral: "V", expected: DegreeV},
		{name: "VI", numeral: "vi", expected: DegreeVI},
		{name: "VII", numeral: "VII", expected: DegreeVII},
		{name: "VIII out of range", numeral: "VIII", expectError: true},
		{name: "arabic numeral", numeral: "4", expectError: true},
		{name: "empty", numeral: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChordDegree(tt.numeral)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q but got %v", tt.numeral, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseChordDegree(%q) failed: %v", tt.numeral, err)
			}
			if got != tt.expected {
				t.Errorf("ParseChordDegree(%q): expected %v, got %v", tt.numeral, tt.expected, got)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name        string
		tag         string
		expected    Preset
		expectError bool
	}{
		{name: "ambient", tag: "ambient", expected: PresetAmbient},
		{name: "minimal mixed case", tag: "Minimal", expected: PresetMinimal},
		{name: "dramatic", tag: "dramatic", expected: PresetDramatic},
		{name: "playful", tag: "PLAYFUL", expected: PresetPlayful},
		{name: "unknown", tag: "cinematic", expectError: true},
		{name: "empty", tag: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePreset(tt.tag)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q but got %v", tt.tag, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePreset(%q) failed: %v", tt.tag, err)
			}
			if got != tt.expected {
				t.Errorf("ParsePreset(%q): expected %v, got %v", tt.tag, tt.expected, got)
			}
		})
	}
}
