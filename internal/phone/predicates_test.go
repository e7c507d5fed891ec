package phone

import (
	"testing"

	"github.com/Veraticus/simsieve/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestContainsAnyAvoidChar(t *testing.T) {
	tests := []struct {
		name   string
		number string
		spec   string
		want   bool
	}{
		{name: "empty spec", number: "0987654321", spec: "", want: false},
		{name: "empty number", number: "", spec: "4", want: false},
		{name: "whitespace ignored", number: "0987654321", spec: "9 8", want: true},
		{name: "single char present", number: "0987654321", spec: "5", want: true},
		{name: "no char present", number: "0988888888", spec: "4 7", want: false},
		{name: "any one char is enough", number: "0912345678", spec: "x y 1", want: true},
		{name: "only whitespace", number: "0987654321", spec: "   ", want: false},
		{name: "tabs and newlines ignored", number: "0988888888", spec: "\t4\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsAnyAvoidChar(tt.number, tt.spec))
		})
	}
}

func TestContainsRequiredSubstring(t *testing.T) {
	tests := []struct {
		name   string
		number string
		spec   string
		want   bool
	}{
		{name: "contiguous substring", number: "0987654321", spec: "765", want: true},
		{name: "characters present but not contiguous", number: "0987654321", spec: "579", want: false},
		{name: "whitespace removed before matching", number: "0987654321", spec: "7 6 5", want: true},
		{name: "empty spec", number: "0987654321", spec: "", want: false},
		{name: "empty number", number: "", spec: "1", want: false},
		{name: "only whitespace matches any number", number: "0987654321", spec: "  ", want: true},
		{name: "whole number", number: "0987654321", spec: "0987654321", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsRequiredSubstring(tt.number, tt.spec))
		})
	}
}

// The avoid spec is a set of characters while the require spec is a single
// substring. The same input therefore behaves differently in each predicate.
func TestAvoidAndRequireAreAsymmetric(t *testing.T) {
	number := "0987654321"

	assert.True(t, ContainsAnyAvoidChar(number, "579"), "avoid matches any single character")
	assert.False(t, ContainsRequiredSubstring(number, "579"), "require needs the whole string in order")

	assert.True(t, ContainsAnyAvoidChar(number, "1 9"))
	assert.False(t, ContainsRequiredSubstring(number, "1 9"))
}

func TestContainsLuckyCategory(t *testing.T) {
	text := "Số có sao Sinh Khí tốt, kèm Phục Vị"

	tests := []struct {
		name     string
		text     string
		category model.LuckyCategory
		want     bool
	}{
		{name: "sinh khi present", text: text, category: model.LuckySinhKhi, want: true},
		{name: "phuc vi present", text: text, category: model.LuckyPhucVi, want: true},
		{name: "thien y absent", text: text, category: model.LuckyThienY, want: false},
		{name: "unknown category", text: text, category: "hung", want: false},
		{name: "empty category", text: text, category: "", want: false},
		{name: "empty text", text: "", category: model.LuckySinhKhi, want: false},
		{name: "case sensitive", text: "sinh khí", category: model.LuckySinhKhi, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsLuckyCategory(tt.text, tt.category))
		})
	}
}

func TestLuckyLabels_Unique(t *testing.T) {
	seen := make(map[string]model.LuckyCategory)
	for _, category := range LuckyCategories() {
		label, ok := LuckyLabel(category)
		assert.True(t, ok)
		assert.NotEmpty(t, label)

		other, dup := seen[label]
		assert.False(t, dup, "label %q used by %s and %s", label, other, category)
		seen[label] = category
	}
	assert.Len(t, seen, 4)
}

func TestLuckyLabel(t *testing.T) {
	label, ok := LuckyLabel(model.LuckyDienNien)
	assert.True(t, ok)
	assert.Equal(t, "Diên Niên", label)

	_, ok = LuckyLabel("unknown")
	assert.False(t, ok)
}
