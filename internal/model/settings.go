package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

var ErrInvalidTheme = errors.New("model: invalid theme")

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

// Next cycles between the known themes.
func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(raw)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

// Settings is the persisted preference bag. Theme is stored as written;
// unknown names are tolerated here and resolved by the presentation layer.
type Settings struct {
	Theme string
	// Extra holds every other key of the document, written back unchanged.
	Extra map[string]json.RawMessage
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["theme"] = s.Theme
	return json.Marshal(out)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Settings{}
	if v, ok := raw["theme"]; ok {
		if err := json.Unmarshal(v, &s.Theme); err != nil {
			return fmt.Errorf("model: settings theme: %w", err)
		}
		delete(raw, "theme")
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}

func (s Settings) Clone() Settings {
	s.Extra = maps.Clone(s.Extra)
	return s
}

func DefaultSettings() Settings {
	return Settings{Theme: string(ThemeDark)}
}
