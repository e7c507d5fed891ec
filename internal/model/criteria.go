package model

// FilterCriteria holds the independent constraints applied to a result set.
// A zero-valued field places no restriction on the results.
type FilterCriteria struct {
	Carrier       Carrier
	Prefix        string
	LuckyCategory LuckyCategory
	Avoid         string
	Require       string
	ValidOnly     bool
}

// IsEmpty reports whether no criterion is set.
func (c FilterCriteria) IsEmpty() bool {
	return len(c.Active()) == 0
}

// Active returns "name=value" pairs for every criterion that is set, in a fixed order.
func (c FilterCriteria) Active() []string {
	var active []string
	if c.Carrier != CarrierNone {
		active = append(active, "carrier="+string(c.Carrier))
	}
	if c.Prefix != "" {
		active = append(active, "prefix="+c.Prefix)
	}
	if c.LuckyCategory != "" {
		active = append(active, "lucky="+string(c.LuckyCategory))
	}
	if c.Avoid != "" {
		active = append(active, "avoid="+c.Avoid)
	}
	if c.Require != "" {
		active = append(active, "require="+c.Require)
	}
	if c.ValidOnly {
		active = append(active, "valid-only")
	}
	return active
}
