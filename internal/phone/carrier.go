// Package phone classifies Vietnamese mobile numbers by carrier and prefix and
// provides the string predicates used to filter analysis results.
package phone

import (
	"fmt"
	"slices"

	"github.com/Veraticus/simsieve/internal/model"
	"github.com/samber/lo"
)

// PrefixLen is the number of leading characters that identify a carrier.
const PrefixLen = 3

type carrierPrefixes struct {
	carrier  model.Carrier
	prefixes []string
}

// carrierTable is never modified after init.
var carrierTable = []carrierPrefixes{
	{model.CarrierViettel, []string{"086", "096", "097", "098", "032", "033", "034", "035", "036", "037", "038", "039"}},
	{model.CarrierVinaphone, []string{"088", "091", "094", "083", "084", "085", "081", "082"}},
	{model.CarrierMobifone, []string{"089", "090", "093", "070", "079", "077", "076", "078"}},
	{model.CarrierVietnamobile, []string{"092", "056", "058"}},
	{model.CarrierGmobile, []string{"099", "059"}},
}

var prefixIndex = buildPrefixIndex(carrierTable)

func buildPrefixIndex(table []carrierPrefixes) map[string]model.Carrier {
	index := make(map[string]model.Carrier)
	for _, entry := range table {
		for _, prefix := range entry.prefixes {
			if owner, ok := index[prefix]; ok {
				panic(fmt.Sprintf("phone: prefix %s assigned to both %s and %s", prefix, owner, entry.carrier))
			}
			index[prefix] = entry.carrier
		}
	}
	return index
}

// ClassifyCarrier returns the carrier owning the number's leading prefix, or
// model.CarrierNone when the prefix is unknown or the number is too short.
func ClassifyCarrier(number string) model.Carrier {
	if number == "" {
		return model.CarrierNone
	}
	return prefixIndex[ExtractPrefix(number)]
}

// ExtractPrefix returns the first three characters of number. Shorter input is
// returned unchanged.
func ExtractPrefix(number string) string {
	count := 0
	for i := range number {
		if count == PrefixLen {
			return number[:i]
		}
		count++
	}
	return number
}

// Carriers lists the known carriers in table order.
func Carriers() []model.Carrier {
	return lo.Map(carrierTable, func(entry carrierPrefixes, _ int) model.Carrier {
		return entry.carrier
	})
}

// Prefixes returns a copy of the prefixes assigned to carrier.
func Prefixes(carrier model.Carrier) []string {
	entry, ok := lo.Find(carrierTable, func(entry carrierPrefixes) bool {
		return entry.carrier == carrier
	})
	if !ok {
		return nil
	}
	return slices.Clone(entry.prefixes)
}

// AllPrefixes returns every known prefix in table order.
func AllPrefixes() []string {
	return lo.FlatMap(carrierTable, func(entry carrierPrefixes, _ int) []string {
		return slices.Clone(entry.prefixes)
	})
}

// IsCarrier reports whether c is one of the known carriers.
func IsCarrier(c model.Carrier) bool {
	return lo.Contains(Carriers(), c)
}
