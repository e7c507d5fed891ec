package phone

import (
	"strings"
	"unicode"

	"github.com/Veraticus/simsieve/internal/model"
	"github.com/samber/lo"
)

type luckyLabel struct {
	category model.LuckyCategory
	label    string
}

var luckyTable = []luckyLabel{
	{model.LuckySinhKhi, "Sinh Khí"},
	{model.LuckyThienY, "Thiên Y"},
	{model.LuckyDienNien, "Diên Niên"},
	{model.LuckyPhucVi, "Phục Vị"},
}

// ContainsAnyAvoidChar reports whether number contains any single character of
// avoidSpec. Whitespace in avoidSpec is ignored.
func ContainsAnyAvoidChar(number, avoidSpec string) bool {
	if number == "" || avoidSpec == "" {
		return false
	}
	return strings.ContainsAny(number, stripSpace(avoidSpec))
}

// ContainsRequiredSubstring reports whether number contains requireSpec, with
// its whitespace removed, as one contiguous substring. Unlike
// ContainsAnyAvoidChar the characters are not matched individually.
func ContainsRequiredSubstring(number, requireSpec string) bool {
	if number == "" || requireSpec == "" {
		return false
	}
	// A spec that is only whitespace cleans to "", which every number contains.
	return strings.Contains(number, stripSpace(requireSpec))
}

// ContainsLuckyCategory reports whether the interpretation text mentions the
// label of the given lucky category.
func ContainsLuckyCategory(text string, category model.LuckyCategory) bool {
	if text == "" {
		return false
	}
	label, ok := LuckyLabel(category)
	if !ok {
		return false
	}
	return strings.Contains(text, label)
}

// LuckyLabel returns the display label for category.
func LuckyLabel(category model.LuckyCategory) (string, bool) {
	entry, ok := lo.Find(luckyTable, func(entry luckyLabel) bool {
		return entry.category == category
	})
	return entry.label, ok
}

// LuckyCategories lists the known lucky categories in display order.
func LuckyCategories() []model.LuckyCategory {
	return lo.Map(luckyTable, func(entry luckyLabel, _ int) model.LuckyCategory {
		return entry.category
	})
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
