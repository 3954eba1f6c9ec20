package engine

import (
	"fmt"
	"strings"
)

// Note semitone offsets from C.
var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNoteName converts a note name like "C", "F#" or "Bb" to a pitch class
// 0..11. Accepts ASCII and unicode accidentals (#, ♯, b, ♭); case
// insensitive. The result wraps mod 12, so "B#" parses to 0 and "Cb" to 11.
func ParseNoteName(name string) (int, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("empty note name")
	}

	upper := strings.ToUpper(trimmed)
	letter := upper[0]
	semitone, ok := noteOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("invalid note letter in %q", name)
	}

	rest := upper[1:]
	switch {
	case rest == "":
	case rest == "#" || rest == "♯":
		semitone++
	case rest == "B" || rest == "♭":
		semitone--
	default:
		return 0, fmt.Errorf("invalid accidental in note name %q", name)
	}

	return ((semitone % 12) + 12) % 12, nil
}

// ParseMode resolves a mode tag like "minor" or "pentatonic_major". Case
// insensitive; the pentatonic modes also accept the short pent_maj/pent_min
// tags.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major":
		return ModeMajor, nil
	case "minor":
		return ModeMinor, nil
	case "dorian":
		return ModeDorian, nil
	case "mixolydian":
		return ModeMixolydian, nil
	case "lydian":
		return ModeLydian, nil
	case "phrygian":
		return ModePhrygian, nil
	case "pentatonic_major", "pent_maj":
		return ModePentatonicMajor, nil
	case "pentatonic_minor", "pent_min":
		return ModePentatonicMinor, nil
	default:
		return ModeMajor, fmt.Errorf("unknown mode %q", name)
	}
}

// ParseChordDegree resolves a Roman numeral "I".."VII", case insensitive.
func ParseChordDegree(name string) (ChordDegree, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range degreeNames {
		if upper == n {
			return ChordDegree(i), nil
		}
	}
	return DegreeI, fmt.Errorf("unknown chord degree %q", name)
}
