package style

import (
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys recognised when deriving a document base style from a
// go-theme manifest.
const (
	TokenFontFamily      = "font.family"
	TokenFontSize        = "font.size"
	TokenLineHeight      = "font.lineHeight"
	TokenLetterSpacing   = "font.letterSpacing"
	TokenFontColor       = "color.text"
	TokenBackgroundColor = "color.background"
	TokenAlignment       = "text.alignment"
)

// FromTheme maps a go-theme selection onto base style Properties. Variant
// tokens override manifest tokens; unrecognised tokens are ignored so themes
// can carry renderer-specific extras.
func FromTheme(selection *theme.Selection) (Properties, error) {
	if selection == nil || selection.Manifest == nil {
		return Properties{}, fmt.Errorf("style: theme selection has no manifest")
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}

	var props Properties
	for key, raw := range tokens {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		switch key {
		case TokenFontFamily:
			props.FontFamily = value
		case TokenFontColor:
			props.FontColor = value
		case TokenBackgroundColor:
			props.BackgroundColor = value
		case TokenAlignment:
			props.Alignment = value
		case TokenFontSize, TokenLineHeight, TokenLetterSpacing:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Properties{}, fmt.Errorf("style: theme token %s: invalid number %q", key, raw)
			}
			switch key {
			case TokenFontSize:
				props.FontSize = parsed
			case TokenLineHeight:
				props.LineHeight = parsed
			case TokenLetterSpacing:
				props.LetterSpacing = parsed
			}
		}
	}
	return props, nil
}
