package parser

import (
	"errors"
	"testing"

	"github.com/contact-parser/app/models"
)

// want holds the expected parts of a parsed name; empty string means the
// field should be empty after defaults are filled in.
type wantName struct {
	title  string
	first  string
	middle string
	last   string
	suffix string
}

func checkName(t *testing.T, got *models.PersonName, want wantName) {
	t.Helper()
	if got.GetTitle() != want.title {
		t.Errorf("Title = %q, want %q", got.GetTitle(), want.title)
	}
	if got.GetFirstName() != want.first {
		t.Errorf("FirstName = %q, want %q", got.GetFirstName(), want.first)
	}
	if got.GetMiddleName() != want.middle {
		t.Errorf("MiddleName = %q, want %q", got.GetMiddleName(), want.middle)
	}
	if got.GetLastName() != want.last {
		t.Errorf("LastName = %q, want %q", got.GetLastName(), want.last)
	}
	if got.GetSuffix() != want.suffix {
		t.Errorf("Suffix = %q, want %q", got.GetSuffix(), want.suffix)
	}
}

func TestNameParser_Parse(t *testing.T) {
	p := NewNameParser()

	testCases := []struct {
		name  string
		input string
		want  wantName
	}{
		{
			name:  "Simple_First_Last",
			input: "John Doe",
			want:  wantName{first: "John", last: "Doe"},
		},
		{
			name:  "Title_And_Lone_Surname",
			input: "Mr. Pink",
			want:  wantName{title: "Mr.", last: "Pink"},
		},
		{
			name:  "Title_Without_Period",
			input: "Mrs Smith",
			want:  wantName{title: "Mrs.", last: "Smith"},
		},
		{
			name:  "Roman_Numeral_Suffix",
			input: "John Doe I",
			want:  wantName{first: "John", last: "Doe", suffix: "I"},
		},
		{
			name:  "Word_Suffix",
			input: "Sammy Davis jr",
			want:  wantName{first: "Sammy", last: "Davis", suffix: "Jr."},
		},
		{
			name:  "Middle_Names_Joined",
			input: "George Herbert Walker Bush",
			want:  wantName{first: "George", middle: "Herbert Walker", last: "Bush"},
		},
		{
			name:  "Comma_Reversal",
			input: "Cousteau, Jacques-Yves",
			want:  wantName{first: "Jacques-Yves", last: "Cousteau"},
		},
		{
			name:  "Comma_Reversal_Trailing_Comma",
			input: "Cousteau,  Jacques-Yves, ",
			want:  wantName{first: "Jacques-Yves", last: "Cousteau"},
		},
		{
			name:  "Double_Surname_Prefix",
			input: "Peter van der Graaf",
			want:  wantName{first: "Peter", last: "van der Graaf"},
		},
		{
			name:  "Double_Prefix_Without_First",
			input: "van der Graaf",
			want:  wantName{last: "van der Graaf"},
		},
		{
			name:  "Single_Surname_Prefix",
			input: "Ludwig van Beethoven",
			want:  wantName{first: "Ludwig", last: "van Beethoven"},
		},
		{
			name:  "Everything_At_Once",
			input: "Dr. Martin Luther King Jr.",
			want:  wantName{title: "Dr.", first: "Martin", middle: "Luther", last: "King", suffix: "Jr."},
		},
		{
			name:  "Lone_Name_Is_First",
			input: "Madonna",
			want:  wantName{first: "Madonna"},
		},
		{
			name:  "Lone_Name_After_Suffix_Is_Last",
			input: "Doe III",
			want:  wantName{last: "Doe", suffix: "III"},
		},
		{
			name:  "Junk_Characters_Stripped",
			input: "  John   Doe!! ",
			want:  wantName{first: "John", last: "Doe"},
		},
		{
			name:  "Hyphen_And_Apostrophe_Kept",
			input: "Jean-Luc O'Brien",
			want:  wantName{first: "Jean-Luc", last: "O'Brien"},
		},
		{
			name:  "Empty_Input",
			input: "",
			want:  wantName{},
		},
		{
			name:  "Punctuation_Only",
			input: " ,.!? ",
			want:  wantName{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.input, true)
			checkName(t, got, tc.want)
		})
	}
}

func TestNameParser_NilDefaults(t *testing.T) {
	p := NewNameParser()

	got := p.Parse("Pink", false)
	if got.FirstName == nil || *got.FirstName != "Pink" {
		t.Fatalf("FirstName = %v, want Pink", got.FirstName)
	}
	if got.Title != nil || got.MiddleName != nil || got.LastName != nil || got.Suffix != nil {
		t.Errorf("unmatched fields should stay nil: %+v", got)
	}

	empty := p.Parse("", false)
	if !empty.IsEmpty() {
		t.Errorf("empty input should produce an all-absent record: %+v", empty)
	}
}

func TestNameParser_ParsePtr(t *testing.T) {
	p := NewNameParser()

	if _, err := p.ParsePtr(nil, true); !errors.Is(err, ErrNilInput) {
		t.Errorf("ParsePtr(nil) error = %v, want ErrNilInput", err)
	}

	text := "John Doe"
	got, err := p.ParsePtr(&text, true)
	if err != nil {
		t.Fatalf("ParsePtr returned error: %v", err)
	}
	checkName(t, got, wantName{first: "John", last: "Doe"})
}

func TestNameParser_ParseInto(t *testing.T) {
	p := NewNameParser()

	if err := p.ParseInto("x", nil, true); !errors.Is(err, ErrNilTarget) {
		t.Errorf("ParseInto(nil target) error = %v, want ErrNilTarget", err)
	}

	// Reuse of the same record must not leak fields between calls.
	var name models.PersonName
	if err := p.ParseInto("Dr. Jane Roe", &name, true); err != nil {
		t.Fatal(err)
	}
	if err := p.ParseInto("Madonna", &name, true); err != nil {
		t.Fatal(err)
	}
	checkName(t, &name, wantName{first: "Madonna"})
}

func TestNameParser_NormalizeTitle(t *testing.T) {
	p := NewNameParser()

	testCases := []struct {
		input string
		want  string
	}{
		{"mr", "Mr."},
		{"Mr.", "Mr."},
		{"MRS", "Mrs."},
		{"miss", "Miss"},
		{"Miss", "Miss"},
		{"prof", "Prof."},
		{"hon.", "Hon."},
		{"captain", "captain"}, // not a known honorific
		{"  dr  ", "Dr."},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := p.NormalizeTitle(tc.input)
			if got != tc.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
			// Normalizing twice changes nothing.
			if again := p.NormalizeTitle(got); again != got {
				t.Errorf("NormalizeTitle not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNameParser_NormalizeSuffix(t *testing.T) {
	p := NewNameParser()

	testCases := []struct {
		input string
		want  string
	}{
		{"jr", "Jr."},
		{"Jr.", "Jr."},
		{"sr", "Sr."},
		{"iii", "III"},
		{"IV", "IV"},
		{"esq", "esq"}, // unrecognized
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := p.NormalizeSuffix(tc.input)
			if got != tc.want {
				t.Errorf("NormalizeSuffix(%q) = %q, want %q", tc.input, got, tc.want)
			}
			if again := p.NormalizeSuffix(got); again != got {
				t.Errorf("NormalizeSuffix not idempotent: %q -> %q", got, again)
			}
		})
	}
}
