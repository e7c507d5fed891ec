// Package filter narrows a batch of analysis results down to the rows that
// satisfy every active criterion.
package filter

import (
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/phone"
	"github.com/samber/lo"
)

// Apply returns the results matching every set criterion, in their original
// order. The input slice is never modified and the returned slice is always
// newly allocated, so Apply may be called concurrently on shared data.
func Apply(results []model.AnalysisResult, criteria model.FilterCriteria) []model.AnalysisResult {
	return lo.Filter(results, func(result model.AnalysisResult, _ int) bool {
		return Matches(result, criteria)
	})
}

// Matches reports whether a single result satisfies every set criterion.
func Matches(result model.AnalysisResult, criteria model.FilterCriteria) bool {
	if !matchesCarrier(result, criteria) {
		return false
	}

	if !matchesPrefix(result, criteria) {
		return false
	}

	if criteria.ValidOnly && !result.IsValid {
		return false
	}

	if !matchesLucky(result, criteria) {
		return false
	}

	// A number holding any avoided character is dropped.
	if criteria.Avoid != "" && phone.ContainsAnyAvoidChar(result.SimNumber, criteria.Avoid) {
		return false
	}

	if criteria.Require != "" && !phone.ContainsRequiredSubstring(result.SimNumber, criteria.Require) {
		return false
	}

	return true
}

func matchesCarrier(result model.AnalysisResult, criteria model.FilterCriteria) bool {
	if criteria.Carrier == model.CarrierNone {
		return true
	}
	return phone.ClassifyCarrier(result.SimNumber) == criteria.Carrier
}

func matchesPrefix(result model.AnalysisResult, criteria model.FilterCriteria) bool {
	if criteria.Prefix == "" {
		return true
	}
	return phone.ExtractPrefix(result.SimNumber) == criteria.Prefix
}

func matchesLucky(result model.AnalysisResult, criteria model.FilterCriteria) bool {
	if criteria.LuckyCategory == "" {
		return true
	}
	return phone.ContainsLuckyCategory(result.Interpretation, criteria.LuckyCategory)
}
