// Package dataset ships the built-in evaluation data (ontology plus platform
// table) and the Store that owns the platform table at runtime. Live vendor
// data never mutates a Store in place: Overlay returns a new merged view, so
// callers decide which view the scorer sees.
package dataset

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/cinchlabs/cmseval/internal/ontology"
)

//go:embed data/ontology.json data/platforms.json
var dataFS embed.FS

// LoadOntology returns the built-in capability ontology.
func LoadOntology() (*ontology.Ontology, error) {
	data, err := dataFS.ReadFile("data/ontology.json")
	if err != nil {
		return nil, fmt.Errorf("dataset: reading embedded ontology: %w", err)
	}
	return ontology.Load(data)
}

// Store owns the platform table. Read-mostly; merging live vendor data
// produces a new Store rather than mutating this one.
type Store struct {
	profiles map[string]models.PlatformProfile
	order    []string
}

// LoadStore returns a Store over the built-in platform table.
func LoadStore() (*Store, error) {
	data, err := dataFS.ReadFile("data/platforms.json")
	if err != nil {
		return nil, fmt.Errorf("dataset: reading embedded platforms: %w", err)
	}
	return NewStore(data)
}

// NewStore parses a platform table document: a JSON object mapping platform
// name to profile.
func NewStore(data []byte) (*Store, error) {
	var table map[string]models.PlatformProfile
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("dataset: parsing platform table: %w", err)
	}

	s := &Store{profiles: make(map[string]models.PlatformProfile, len(table))}
	for _, name := range topLevelKeys(data) {
		p := table[name]
		p.Name = name
		s.profiles[name] = p
		s.order = append(s.order, name)
	}
	return s, nil
}

// Profiles returns every platform profile in table order.
func (s *Store) Profiles() []models.PlatformProfile {
	out := make([]models.PlatformProfile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.profiles[name])
	}
	return out
}

// Get returns the profile for a platform name, if present.
func (s *Store) Get(name string) (models.PlatformProfile, bool) {
	p, ok := s.profiles[name]
	return p, ok
}

// Names returns the platform names in table order.
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Assessments converts every profile to a quick-score assessment, in table
// order.
func (s *Store) Assessments() []models.PlatformAssessment {
	out := make([]models.PlatformAssessment, 0, len(s.order))
	for _, p := range s.Profiles() {
		out = append(out, models.AssessmentFromProfile(p))
	}
	return out
}

// Overlay returns a new Store where fetched vendor capabilities supersede
// the static ones. Qualitative fields are kept from the static profile.
// Vendor keys are matched to platform names case-insensitively; keys with no
// matching profile and empty capability maps are ignored. The receiver is
// left untouched.
func (s *Store) Overlay(vendorData map[string]models.VendorData) *Store {
	merged := &Store{
		profiles: make(map[string]models.PlatformProfile, len(s.profiles)),
		order:    append([]string(nil), s.order...),
	}
	for name, p := range s.profiles {
		copied := p
		copied.Capabilities = make(map[string]int, len(p.Capabilities))
		for k, v := range p.Capabilities {
			copied.Capabilities[k] = v
		}
		merged.profiles[name] = copied
	}

	for vendor, data := range vendorData {
		name, ok := matchProfileName(merged.order, vendor)
		if !ok || len(data.Capabilities) == 0 {
			continue
		}
		p := merged.profiles[name]
		p.Capabilities = make(map[string]int, len(data.Capabilities))
		for k, v := range data.Capabilities {
			p.Capabilities[k] = v
		}
		merged.profiles[name] = p
	}
	return merged
}

// matchProfileName resolves a lowercase vendor key ("contentful") to a table
// name ("Contentful").
func matchProfileName(names []string, vendor string) (string, bool) {
	for _, name := range names {
		if strings.EqualFold(name, vendor) {
			return name, true
		}
	}
	return "", false
}

// topLevelKeys returns the object keys of a JSON document in input order.
func topLevelKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil
		}
	}
	return keys
}
