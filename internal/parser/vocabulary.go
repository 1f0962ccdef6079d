package parser

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contact-parser/internal/normalizer"
)

//go:embed data/vocabulary.yaml
var vocabularyYAML []byte

// vocabularyFile mirrors the embedded YAML layout.
type vocabularyFile struct {
	Titles       []string `yaml:"titles"`
	Suffixes     []string `yaml:"suffixes"`
	NamePrefixes struct {
		Single []string `yaml:"single"`
		Double []string `yaml:"double"`
	} `yaml:"name_prefixes"`
	StreetDesignators []string `yaml:"street_designators"`
}

// vocabulary holds the read-only lookup tables both parsers disambiguate
// against. Built once at package init and never mutated, so concurrent
// reads need no synchronization.
type vocabulary struct {
	titles         map[string]struct{}
	suffixes       map[string]struct{}
	singlePrefixes map[string]struct{}
	doublePrefixes map[string]struct{}

	// designatorCanon maps every folded alias and canonical name onto the
	// canonical spelling; designatorPattern is the combined whole-word
	// alternation over the same set.
	designatorCanon   map[string]string
	designatorPattern *regexp.Regexp
}

var vocab = mustLoadVocabulary()

func mustLoadVocabulary() *vocabulary {
	v, err := loadVocabulary(vocabularyYAML)
	if err != nil {
		panic(fmt.Sprintf("parser: bad embedded vocabulary: %v", err))
	}
	return v
}

func loadVocabulary(raw []byte) (*vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unmarshal vocabulary: %w", err)
	}

	v := &vocabulary{
		titles:          foldedSet(file.Titles),
		suffixes:        foldedSet(file.Suffixes),
		singlePrefixes:  foldedSet(file.NamePrefixes.Single),
		doublePrefixes:  foldedSet(file.NamePrefixes.Double),
		designatorCanon: make(map[string]string),
	}

	var alternatives []string
	for _, line := range file.StreetDesignators {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		canonical := words[0]
		for _, word := range words {
			v.designatorCanon[normalizer.Fold(word)] = canonical
			alternatives = append(alternatives, regexp.QuoteMeta(word))
		}
	}
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("no street designators defined")
	}
	// Longer alternatives first so "street" wins over "st" at the same
	// position.
	sort.Slice(alternatives, func(i, j int) bool { return len(alternatives[i]) > len(alternatives[j]) })
	v.designatorPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\b`)

	return v, nil
}

func foldedSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[normalizer.Fold(w)] = struct{}{}
	}
	return set
}

func (v *vocabulary) isTitle(token string) bool {
	_, ok := v.titles[normalizer.Fold(token)]
	return ok
}

func (v *vocabulary) isSuffixWord(token string) bool {
	_, ok := v.suffixes[normalizer.Fold(token)]
	return ok
}

func (v *vocabulary) isSinglePrefix(token string) bool {
	_, ok := v.singlePrefixes[normalizer.Fold(token)]
	return ok
}

func (v *vocabulary) isDoublePrefix(first, second string) bool {
	_, ok := v.doublePrefixes[normalizer.Fold(first)+" "+normalizer.Fold(second)]
	return ok
}

// canonicalDesignator resolves a matched designator to its canonical
// spelling, falling back to title-casing the literal when the table has no
// entry for it.
func (v *vocabulary) canonicalDesignator(matched string) string {
	if canonical, ok := v.designatorCanon[normalizer.Fold(matched)]; ok {
		return canonical
	}
	return upperFirstLower(matched)
}
