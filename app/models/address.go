package models

// Address holds the structured fields extracted from a free-form street
// address. Field semantics follow PersonName: nil means absent, "" means
// unset under empty defaults.
type Address struct {
	UnitNumber       *string `bson:"unit_number,omitempty" json:"unit_number,omitempty"`             // Suite/apartment number
	HouseNumber      *string `bson:"house_number,omitempty" json:"house_number,omitempty"`           // Building street number
	StreetDirPrefix  *string `bson:"street_dir_prefix,omitempty" json:"street_dir_prefix,omitempty"` // Cardinal prefix, e.g. "SW"
	StreetName       *string `bson:"street_name,omitempty" json:"street_name,omitempty"`             // Street name proper
	StreetDesignator *string `bson:"street_designator,omitempty" json:"street_designator,omitempty"` // Canonical type, e.g. "Street"
	StreetDirSuffix  *string `bson:"street_dir_suffix,omitempty" json:"street_dir_suffix,omitempty"` // Cardinal suffix
	Floor            *string `bson:"floor,omitempty" json:"floor,omitempty"`                         // Building level
}

// FillEmptyDefaults replaces every nil field with an empty string.
func (a *Address) FillEmptyDefaults() {
	for _, f := range []**string{
		&a.UnitNumber, &a.HouseNumber, &a.StreetDirPrefix, &a.StreetName,
		&a.StreetDesignator, &a.StreetDirSuffix, &a.Floor,
	} {
		if *f == nil {
			empty := ""
			*f = &empty
		}
	}
}

// Reset clears all fields back to absent.
func (a *Address) Reset() {
	*a = Address{}
}

// IsEmpty reports whether no component was extracted.
func (a *Address) IsEmpty() bool {
	for _, f := range []*string{
		a.UnitNumber, a.HouseNumber, a.StreetDirPrefix, a.StreetName,
		a.StreetDesignator, a.StreetDirSuffix, a.Floor,
	} {
		if f != nil && *f != "" {
			return false
		}
	}
	return true
}

// GetUnitNumber returns the unit number or "" when absent.
func (a *Address) GetUnitNumber() string { return deref(a.UnitNumber) }

// GetHouseNumber returns the house number or "" when absent.
func (a *Address) GetHouseNumber() string { return deref(a.HouseNumber) }

// GetStreetDirPrefix returns the direction prefix or "" when absent.
func (a *Address) GetStreetDirPrefix() string { return deref(a.StreetDirPrefix) }

// GetStreetName returns the street name or "" when absent.
func (a *Address) GetStreetName() string { return deref(a.StreetName) }

// GetStreetDesignator returns the canonical designator or "" when absent.
func (a *Address) GetStreetDesignator() string { return deref(a.StreetDesignator) }

// GetStreetDirSuffix returns the direction suffix or "" when absent.
func (a *Address) GetStreetDirSuffix() string { return deref(a.StreetDirSuffix) }

// GetFloor returns the floor or "" when absent.
func (a *Address) GetFloor() string { return deref(a.Floor) }
