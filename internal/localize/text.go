package localize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Language selects which side of a bilingual field is shown.
type Language string

const (
	LangEN Language = "EN"
	LangVI Language = "VI"
)

// ParseLanguage is tolerant of case and defaults to English.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LangVI)) {
		return LangVI
	}
	return LangEN
}

// Text is a bilingual string normalized once at the decode boundary. The
// backend sends these fields either as a plain string or as {"en","vi"};
// after decoding, callers only ever see the normalized form.
type Text struct {
	EN string
	VI string
}

// Plain builds a Text whose two sides are the same string.
func Plain(s string) Text {
	return Text{EN: s, VI: s}
}

// Resolve returns the string for the given language, falling back to the
// other side when the requested one is empty.
func (t Text) Resolve(lang Language) string {
	if lang == LangVI {
		if t.VI != "" {
			return t.VI
		}
		return t.EN
	}
	if t.EN != "" {
		return t.EN
	}
	return t.VI
}

func (t Text) IsZero() bool {
	return t.EN == "" && t.VI == ""
}

func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*t = Text{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("localized text: %w", err)
		}
		*t = Plain(s)
		return nil
	}

	var obj struct {
		EN string `json:"en"`
		VI string `json:"vi"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}
	*t = Text{EN: obj.EN, VI: obj.VI}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t.EN == t.VI {
		return json.Marshal(t.EN)
	}
	return json.Marshal(struct {
		EN string `json:"en"`
		VI string `json:"vi"`
	}{t.EN, t.VI})
}
