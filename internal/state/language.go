package state

import (
	"fmt"
	"strings"
)

const DefaultLanguage = "en"

type Language struct {
	Code string
	Name string
}

// Languages are the interface languages offered by the platform.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "zh", Name: "中文"},
	{Code: "ja", Name: "日本語"},
	{Code: "de", Name: "Deutsch"},
	{Code: "fr", Name: "Français"},
	{Code: "ko", Name: "한국어"},
	{Code: "es", Name: "Español"},
}

func IsSupportedLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Language returns the stored language, or DefaultLanguage when none or an
// unsupported one is stored.
func (s *Store) Language() string {
	code := s.Get(KeyLanguage)
	if !IsSupportedLanguage(code) {
		return DefaultLanguage
	}
	return code
}

func (s *Store) SetLanguage(code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if !IsSupportedLanguage(code) {
		return fmt.Errorf("unsupported language %q", code)
	}
	return s.Set(KeyLanguage, code)
}
