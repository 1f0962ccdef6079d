package models

// PersonName holds the structured fields extracted from a free-form person
// name. A nil field means the component was absent from the input; when the
// parser runs with empty defaults, unset fields hold "" instead of nil.
type PersonName struct {
	Title      *string `bson:"title,omitempty" json:"title,omitempty"`             // Honorific, e.g. "Mr."
	FirstName  *string `bson:"first_name,omitempty" json:"first_name,omitempty"`   // Given name
	MiddleName *string `bson:"middle_name,omitempty" json:"middle_name,omitempty"` // Middle name(s), space-joined
	LastName   *string `bson:"last_name,omitempty" json:"last_name,omitempty"`     // Surname, incl. absorbed prefix
	Suffix     *string `bson:"suffix,omitempty" json:"suffix,omitempty"`           // Generational suffix, e.g. "Jr.", "IV"
}

// FillEmptyDefaults replaces every nil field with an empty string.
func (pn *PersonName) FillEmptyDefaults() {
	for _, f := range []**string{&pn.Title, &pn.FirstName, &pn.MiddleName, &pn.LastName, &pn.Suffix} {
		if *f == nil {
			empty := ""
			*f = &empty
		}
	}
}

// Reset clears all fields back to absent.
func (pn *PersonName) Reset() {
	*pn = PersonName{}
}

// IsEmpty reports whether no component was extracted.
func (pn *PersonName) IsEmpty() bool {
	for _, f := range []*string{pn.Title, pn.FirstName, pn.MiddleName, pn.LastName, pn.Suffix} {
		if f != nil && *f != "" {
			return false
		}
	}
	return true
}

// GetTitle returns the title or "" when absent.
func (pn *PersonName) GetTitle() string { return deref(pn.Title) }

// GetFirstName returns the first name or "" when absent.
func (pn *PersonName) GetFirstName() string { return deref(pn.FirstName) }

// GetMiddleName returns the middle name or "" when absent.
func (pn *PersonName) GetMiddleName() string { return deref(pn.MiddleName) }

// GetLastName returns the last name or "" when absent.
func (pn *PersonName) GetLastName() string { return deref(pn.LastName) }

// GetSuffix returns the suffix or "" when absent.
func (pn *PersonName) GetSuffix() string { return deref(pn.Suffix) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
