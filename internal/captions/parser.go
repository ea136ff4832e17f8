package captions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const arrowSeparator = "-->"

// Cue is one timed caption: a start/end offset in seconds and the caption
// text with internal line breaks collapsed to spaces.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Parse extracts cues from an SRT-style document. Blocks are separated by
// blank lines; each block carries an optional numeric index line, a
// "start --> end" timecode line, and one or more text lines. Malformed
// blocks are skipped rather than failing the whole document: subtitle corpora
// are assumed to contain noise.
func Parse(content string) []Cue {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	cues := make([]Cue, 0, len(blocks))
	for _, block := range blocks {
		if cue, ok := parseBlock(block); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	return Parse(string(data)), nil
}

func parseBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 3 {
		return Cue{}, false
	}

	// The timecode line may be first (no index line) or second.
	timeLine := -1
	switch {
	case strings.Contains(lines[1], arrowSeparator):
		timeLine = 1
	case strings.Contains(lines[0], arrowSeparator):
		timeLine = 0
	default:
		return Cue{}, false
	}

	parts := strings.Split(lines[timeLine], arrowSeparator)
	if len(parts) != 2 {
		return Cue{}, false
	}
	start, err := parseTimecode(parts[0])
	if err != nil {
		return Cue{}, false
	}
	end, err := parseTimecode(parts[1])
	if err != nil {
		return Cue{}, false
	}
	if end <= start {
		return Cue{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[timeLine+1:], " "))
	if text == "" {
		return Cue{}, false
	}
	return Cue{Start: start, End: end, Text: text}, true
}

// parseTimecode converts "HH:MM:SS,mmm" to seconds. A period is accepted in
// place of the comma (the SRT standard uses a comma, but corpora mix both).
func parseTimecode(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timecode")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
