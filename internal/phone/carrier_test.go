package phone

import (
	"testing"

	"github.com/Veraticus/simsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCarrier_EveryPrefix(t *testing.T) {
	for _, carrier := range Carriers() {
		prefixes := Prefixes(carrier)
		require.NotEmpty(t, prefixes, "carrier %s has no prefixes", carrier)

		for _, prefix := range prefixes {
			assert.Equal(t, carrier, ClassifyCarrier(prefix+"1234567"), "prefix %s", prefix)
			assert.Equal(t, carrier, ClassifyCarrier(prefix), "bare prefix %s", prefix)
		}
	}
}

func TestClassifyCarrier(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   model.Carrier
	}{
		{name: "viettel 098", number: "0987654321", want: model.CarrierViettel},
		{name: "viettel 086", number: "0867654321", want: model.CarrierViettel},
		{name: "vinaphone", number: "0912345678", want: model.CarrierVinaphone},
		{name: "mobifone", number: "0933253456", want: model.CarrierMobifone},
		{name: "vietnamobile", number: "0561234567", want: model.CarrierVietnamobile},
		{name: "gmobile", number: "0591234567", want: model.CarrierGmobile},
		{name: "unknown prefix", number: "0111234567", want: model.CarrierNone},
		{name: "empty", number: "", want: model.CarrierNone},
		{name: "too short", number: "09", want: model.CarrierNone},
		{name: "non digits", number: "abcdefg", want: model.CarrierNone},
		{name: "international format", number: "+84987654321", want: model.CarrierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCarrier(tt.number))
		})
	}
}

func TestPrefixTable_Disjoint(t *testing.T) {
	owners := make(map[string]model.Carrier)
	for _, carrier := range Carriers() {
		for _, prefix := range Prefixes(carrier) {
			owner, seen := owners[prefix]
			assert.False(t, seen, "prefix %s belongs to %s and %s", prefix, owner, carrier)
			owners[prefix] = carrier
		}
	}
	assert.Len(t, AllPrefixes(), len(owners))
}

func TestBuildPrefixIndex_PanicsOnOverlap(t *testing.T) {
	overlapping := []carrierPrefixes{
		{model.CarrierViettel, []string{"098"}},
		{model.CarrierMobifone, []string{"098"}},
	}
	assert.Panics(t, func() { buildPrefixIndex(overlapping) })
}

func TestExtractPrefix(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   string
	}{
		{name: "empty", number: "", want: ""},
		{name: "regular", number: "098xxxx", want: "098"},
		{name: "exactly three", number: "091", want: "091"},
		{name: "shorter", number: "0", want: "0"},
		{name: "no digit validation", number: "abcdef", want: "abc"},
		{name: "multibyte", number: "ĐĐĐĐ", want: "ĐĐĐ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPrefix(tt.number))
		})
	}
}

func TestPrefixes_ReturnsCopy(t *testing.T) {
	prefixes := Prefixes(model.CarrierGmobile)
	require.Equal(t, []string{"099", "059"}, prefixes)

	prefixes[0] = "000"
	assert.Equal(t, []string{"099", "059"}, Prefixes(model.CarrierGmobile))
	assert.Nil(t, Prefixes(model.CarrierNone))
}

func TestCarriers(t *testing.T) {
	assert.Equal(t, []model.Carrier{
		model.CarrierViettel,
		model.CarrierVinaphone,
		model.CarrierMobifone,
		model.CarrierVietnamobile,
		model.CarrierGmobile,
	}, Carriers())
	assert.True(t, IsCarrier(model.CarrierVinaphone))
	assert.False(t, IsCarrier("beeline"))
	assert.False(t, IsCarrier(model.CarrierNone))
}
