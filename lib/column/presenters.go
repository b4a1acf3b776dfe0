// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package column

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/bureau-foundation/tabula/lib/record"
)

// BadgeBucket maps a set of values to a tone. Values match
// case-insensitively after trimming.
type BadgeBucket struct {
	Tone   Tone     `json:"tone" yaml:"tone"`
	Values []string `json:"values" yaml:"values"`
}

// BadgeConfig is the CellConfig for badge cells. The first bucket
// containing the value wins; unmatched values get Default (neutral
// when empty).
type BadgeConfig struct {
	Buckets []BadgeBucket `json:"buckets" yaml:"buckets"`
	Default Tone          `json:"default,omitempty" yaml:"default,omitempty"`
}

// CurrencyConfig is the CellConfig for currency cells.
type CurrencyConfig struct {
	// Symbol prefixes the amount. Empty uses the registry default.
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`

	// MinFractionDigits and MaxFractionDigits bound the rendered
	// fraction. Zero max means 2.
	MinFractionDigits int `json:"min_fraction_digits,omitempty" yaml:"min_fraction_digits,omitempty"`
	MaxFractionDigits int `json:"max_fraction_digits,omitempty" yaml:"max_fraction_digits,omitempty"`
}

// AvatarConfig is the CellConfig for avatar cells. When the column
// value is a nested object, NameField and ImageField are resolved
// against it; a string value is taken as the name.
type AvatarConfig struct {
	NameField  string `json:"name_field,omitempty" yaml:"name_field,omitempty"`
	ImageField string `json:"image_field,omitempty" yaml:"image_field,omitempty"`
}

// DateConfig is the CellConfig for date cells.
type DateConfig struct {
	// Layout overrides the registry's date layout.
	Layout string `json:"layout,omitempty" yaml:"layout,omitempty"`

	// Relative renders "3 days ago" instead of an absolute date.
	Relative bool `json:"relative,omitempty" yaml:"relative,omitempty"`
}

func presentPlain(_ any, value any) (Cell, bool) {
	return Cell{Type: CellPlain, Text: record.String(value)}, true
}

func presentBadge(config any, value any) (Cell, bool) {
	var badge BadgeConfig
	switch typed := config.(type) {
	case nil:
	case BadgeConfig:
		badge = typed
	case *BadgeConfig:
		if typed != nil {
			badge = *typed
		}
	default:
		return Cell{}, false
	}

	text := record.String(value)
	key := strings.ToLower(strings.TrimSpace(text))
	tone := badge.Default
	if tone == "" {
		tone = ToneNeutral
	}
bucketLoop:
	for _, bucket := range badge.Buckets {
		for _, member := range bucket.Values {
			if strings.ToLower(strings.TrimSpace(member)) == key {
				tone = bucket.Tone
				break bucketLoop
			}
		}
	}
	return Cell{Text: text, Tone: tone}, true
}

func currencyPresenter(options Options) Presenter {
	printer := message.NewPrinter(options.Locale)
	return func(config any, value any) (Cell, bool) {
		var currency CurrencyConfig
		switch typed := config.(type) {
		case nil:
		case CurrencyConfig:
			currency = typed
		case *CurrencyConfig:
			if typed != nil {
				currency = *typed
			}
		default:
			return Cell{}, false
		}

		amount, ok := record.Number(value)
		if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return Cell{}, false
		}

		symbol := currency.Symbol
		if symbol == "" {
			symbol = options.CurrencySymbol
		}
		maxDigits := currency.MaxFractionDigits
		if maxDigits <= 0 {
			maxDigits = 2
		}
		minDigits := min(max(currency.MinFractionDigits, 0), maxDigits)

		sign := ""
		if amount < 0 {
			sign = "-"
			amount = -amount
		}
		formatted := printer.Sprint(number.Decimal(amount,
			number.MinFractionDigits(minDigits),
			number.MaxFractionDigits(maxDigits)))
		return Cell{Text: sign + symbol + formatted}, true
	}
}

func presentAvatar(config any, value any) (Cell, bool) {
	avatar := AvatarConfig{NameField: "name", ImageField: "image"}
	switch typed := config.(type) {
	case nil:
	case AvatarConfig:
		avatar = mergeAvatarConfig(avatar, typed)
	case *AvatarConfig:
		if typed != nil {
			avatar = mergeAvatarConfig(avatar, *typed)
		}
	default:
		return Cell{}, false
	}

	var name, image string
	switch typed := value.(type) {
	case string:
		name = typed
	case record.Row, map[string]any:
		name = record.String(fieldOf(typed, avatar.NameField))
		image = record.String(fieldOf(typed, avatar.ImageField))
	default:
		return Cell{}, false
	}

	return Cell{Text: Initials(name), Image: strings.TrimSpace(image)}, true
}

func mergeAvatarConfig(base, override AvatarConfig) AvatarConfig {
	if override.NameField != "" {
		base.NameField = override.NameField
	}
	if override.ImageField != "" {
		base.ImageField = override.ImageField
	}
	return base
}

func fieldOf(value any, path string) any {
	resolved, _ := record.Resolve(value, path)
	return resolved
}

// Initials returns up to two upper-case initials from the first and
// last words of name, or "?" when name has no letters or digits.
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "?"
	}
	first := []rune(words[0])[0]
	if len(words) == 1 {
		return strings.ToUpper(string(first))
	}
	last := []rune(words[len(words)-1])[0]
	return strings.ToUpper(string([]rune{first, last}))
}

func datePresenter(options Options) Presenter {
	return func(config any, value any) (Cell, bool) {
		var date DateConfig
		switch typed := config.(type) {
		case nil:
		case DateConfig:
			date = typed
		case *DateConfig:
			if typed != nil {
				date = *typed
			}
		default:
			return Cell{}, false
		}

		moment, ok := ParseTime(value)
		if !ok {
			if text, isString := value.(string); isString {
				return Cell{Text: text}, true
			}
			return Cell{}, false
		}

		relative := date.Relative || (options.RelativeDates && date.Layout == "")
		if relative {
			return Cell{Text: humanize.RelTime(moment, options.Clock.Now(), "ago", "from now")}, true
		}
		layout := date.Layout
		if layout == "" {
			layout = options.DateLayout
		}
		return Cell{Text: options.Dates.FormatDate(moment, layout)}, true
	}
}

// dateLayouts are tried in order when parsing string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTime interprets value as a point in time: a time.Time, an
// RFC 3339 or date-only string, or a number of Unix milliseconds.
func ParseTime(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, !typed.IsZero()
	case *time.Time:
		if typed == nil {
			return time.Time{}, false
		}
		return *typed, !typed.IsZero()
	case string:
		trimmed := strings.TrimSpace(typed)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}
	if millis, ok := record.Number(value); ok && !math.IsNaN(millis) && !math.IsInf(millis, 0) {
		return time.UnixMilli(int64(millis)).UTC(), true
	}
	return time.Time{}, false
}
