package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// JoystickLayout is one parsed joystick topology entry.
type JoystickLayout struct {
	Axes    int
	Buttons int
	Hats    int
}

// ParseJoystickString parses a joystick topology list like
// "6a10b1h, 2a4b" into layouts. Each entry is a run of <count><kind>
// pairs where the kind is 'a' (axes), 'b' (buttons) or 'h' (hats);
// omitted kinds default to zero. Blank entries and '#' comments are
// skipped.
func ParseJoystickString(input string, separator string) ([]JoystickLayout, error) {
	if separator == "" {
		separator = "\n"
	}

	var result []JoystickLayout
	entries := strings.Split(input, separator)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if idx := strings.Index(entry, "#"); idx != -1 {
			entry = strings.TrimSpace(entry[:idx])
		}
		if entry == "" {
			continue
		}

		layout, err := parseLayout(entry)
		if err != nil {
			return nil, err
		}
		result = append(result, layout)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no joystick entries in %q", input)
	}
	return result, nil
}

func parseLayout(entry string) (JoystickLayout, error) {
	layout := JoystickLayout{}
	rest := strings.ToLower(entry)

	for rest != "" {
		split := strings.IndexAny(rest, "abh")
		if split <= 0 {
			return JoystickLayout{}, fmt.Errorf("invalid joystick entry %q (want e.g. 6a10b1h)", entry)
		}

		count, err := strconv.Atoi(rest[:split])
		if err != nil || count < 0 {
			return JoystickLayout{}, fmt.Errorf("invalid count in joystick entry %q", entry)
		}

		switch rest[split] {
		case 'a':
			layout.Axes = count
		case 'b':
			layout.Buttons = count
		case 'h':
			layout.Hats = count
		}
		rest = rest[split+1:]
	}

	return layout, nil
}
