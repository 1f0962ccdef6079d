package parser

import "testing"

// The package-level functions share one default parser pair; a quick pass
// over each confirms the wiring.
func TestPackageLevelFunctions(t *testing.T) {
	name := ParseName("Mr. Pink")
	if name.GetTitle() != "Mr." || name.GetLastName() != "Pink" {
		t.Errorf("ParseName = %+v, want Title Mr. and LastName Pink", name)
	}

	addr := ParseAddress("2790 SW Marine Drive")
	if addr.GetStreetDirPrefix() != "SW" || addr.GetStreetDesignator() != "Drive" {
		t.Errorf("ParseAddress = %+v, want SW / Drive", addr)
	}

	if got := NormalizeTitle("mrs"); got != "Mrs." {
		t.Errorf("NormalizeTitle = %q, want Mrs.", got)
	}
	if got := NormalizeSuffix("iv"); got != "IV" {
		t.Errorf("NormalizeSuffix = %q, want IV", got)
	}
	if got := TrimUnitNumber("#408"); got != "408" {
		t.Errorf("TrimUnitNumber = %q, want 408", got)
	}
	if got := TrimFloorNumber("1st floor"); got != "1" {
		t.Errorf("TrimFloorNumber = %q, want 1", got)
	}
}
