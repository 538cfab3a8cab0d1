package models

import "EduAble/internal/app_errors"

const (
	ThemeLight        = "light"
	ThemeDark         = "dark"
	ThemeHighContrast = "high-contrast"
	ThemeColorBlind   = "color-blind"

	FontFamilyStandard = "standard"
	FontFamilyDyslexic = "dyslexic"

	FontSizeNormal = "normal"
	FontSizeLarge  = "large"
	FontSizeLarger = "larger"
)

// AccessibilitySettings is the closed per-user preference set. Every field
// has an enumerated value range; merging rejects anything outside it.
type AccessibilitySettings struct {
	Theme      string `json:"theme"`
	FontFamily string `json:"fontFamily"`
	FontSize   string `json:"fontSize"`
	EnableTTS  bool   `json:"enableTTS"`
}

// AccessibilitySettingsPatch is a partial update. Nil fields are left as-is.
type AccessibilitySettingsPatch struct {
	Theme      *string `json:"theme"`
	FontFamily *string `json:"fontFamily"`
	FontSize   *string `json:"fontSize"`
	EnableTTS  *bool   `json:"enableTTS"`
}

func DefaultAccessibilitySettings() AccessibilitySettings {
	return AccessibilitySettings{
		Theme:      ThemeLight,
		FontFamily: FontFamilyStandard,
		FontSize:   FontSizeNormal,
		EnableTTS:  false,
	}
}

// Merge applies a validated patch and returns the merged settings.
func (s AccessibilitySettings) Merge(patch AccessibilitySettingsPatch) (AccessibilitySettings, error) {
	if patch.Theme != nil {
		switch *patch.Theme {
		case ThemeLight, ThemeDark, ThemeHighContrast, ThemeColorBlind:
			s.Theme = *patch.Theme
		default:
			return s, app_errors.ErrValidation
		}
	}
	if patch.FontFamily != nil {
		switch *patch.FontFamily {
		case FontFamilyStandard, FontFamilyDyslexic:
			s.FontFamily = *patch.FontFamily
		default:
			return s, app_errors.ErrValidation
		}
	}
	if patch.FontSize != nil {
		switch *patch.FontSize {
		case FontSizeNormal, FontSizeLarge, FontSizeLarger:
			s.FontSize = *patch.FontSize
		default:
			return s, app_errors.ErrValidation
		}
	}
	if patch.EnableTTS != nil {
		s.EnableTTS = *patch.EnableTTS
	}
	return s, nil
}
