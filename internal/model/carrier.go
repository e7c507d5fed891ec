package model

// Carrier identifies a Vietnamese mobile network operator.
type Carrier string

const (
	// CarrierNone is returned when a number matches no known prefix.
	CarrierNone         Carrier = ""
	CarrierViettel      Carrier = "viettel"
	CarrierVinaphone    Carrier = "vinaphone"
	CarrierMobifone     Carrier = "mobifone"
	CarrierVietnamobile Carrier = "vietnamobile"
	CarrierGmobile      Carrier = "gmobile"
)

// String implements fmt.Stringer.
func (c Carrier) String() string {
	if c == CarrierNone {
		return "none"
	}
	return string(c)
}

// LuckyCategory identifies one of the favourable ("sao cát") numerology stars.
type LuckyCategory string

const (
	LuckySinhKhi  LuckyCategory = "sinh_khi"
	LuckyThienY   LuckyCategory = "thien_y"
	LuckyDienNien LuckyCategory = "dien_nien"
	LuckyPhucVi   LuckyCategory = "phuc_vi"
)
