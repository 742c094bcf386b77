// Package ontology holds the typed capability model used for CMS evaluation:
// capability dimensions, business use cases, and weighted business outcomes.
// An Ontology is read-only after construction.
package ontology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Capability is a named dimension of CMS functionality, scored 0-3.
type Capability struct {
	Key        string   `json:"-"`
	Label      string   `json:"label"`
	Facets     []string `json:"facets"`
	Scale      string   `json:"scale"`
	Importance string   `json:"importance"` // "critical", "high", or "medium"
}

// UseCase is a business scenario with minimum required capability levels.
type UseCase struct {
	Key                  string         `json:"-"`
	Label                string         `json:"label"`
	RequiredCapabilities map[string]int `json:"required_capabilities"`
}

// BusinessOutcome is a weighted KPI category blended into overall fit.
type BusinessOutcome struct {
	Key    string  `json:"-"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Ontology owns the full capability model. Key order matches the source
// document.
type Ontology struct {
	capabilities map[string]Capability
	useCases     map[string]UseCase
	outcomes     map[string]BusinessOutcome

	capabilityKeys []string
	useCaseKeys    []string
	outcomeKeys    []string
}

type document struct {
	Capabilities     map[string]Capability      `json:"capabilities"`
	UseCases         map[string]UseCase         `json:"use_cases"`
	BusinessOutcomes map[string]BusinessOutcome `json:"business_outcomes"`
}

// Load parses an ontology from a JSON document with top-level sections
// capabilities, use_cases, and business_outcomes. Absent sections default to
// empty; a malformed document or a use case referencing an unknown
// capability is an error.
func Load(data []byte) (*Ontology, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ontology: parsing document: %w", err)
	}

	o := &Ontology{
		capabilities: make(map[string]Capability, len(doc.Capabilities)),
		useCases:     make(map[string]UseCase, len(doc.UseCases)),
		outcomes:     make(map[string]BusinessOutcome, len(doc.BusinessOutcomes)),
	}

	for _, key := range sectionKeys(data, "capabilities") {
		c := doc.Capabilities[key]
		c.Key = key
		o.capabilities[key] = c
		o.capabilityKeys = append(o.capabilityKeys, key)
	}
	for _, key := range sectionKeys(data, "use_cases") {
		uc := doc.UseCases[key]
		uc.Key = key
		o.useCases[key] = uc
		o.useCaseKeys = append(o.useCaseKeys, key)
	}
	for _, key := range sectionKeys(data, "business_outcomes") {
		bo := doc.BusinessOutcomes[key]
		bo.Key = key
		o.outcomes[key] = bo
		o.outcomeKeys = append(o.outcomeKeys, key)
	}

	if err := o.validateReferences(); err != nil {
		return nil, err
	}

	return o, nil
}

// validateReferences checks that every capability a use case requires exists.
func (o *Ontology) validateReferences() error {
	var unknown []string
	for _, ucKey := range o.useCaseKeys {
		for capKey := range o.useCases[ucKey].RequiredCapabilities {
			if _, ok := o.capabilities[capKey]; !ok {
				unknown = append(unknown, fmt.Sprintf("%s -> %s", ucKey, capKey))
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("ontology: use cases reference unknown capabilities: %s",
			strings.Join(unknown, ", "))
	}
	return nil
}

// GetCapability returns the capability for key, if present.
func (o *Ontology) GetCapability(key string) (Capability, bool) {
	c, ok := o.capabilities[key]
	return c, ok
}

// GetUseCase returns the use case for key, if present.
func (o *Ontology) GetUseCase(key string) (UseCase, bool) {
	uc, ok := o.useCases[key]
	return uc, ok
}

// GetOutcome returns the business outcome for key, if present.
func (o *Ontology) GetOutcome(key string) (BusinessOutcome, bool) {
	bo, ok := o.outcomes[key]
	return bo, ok
}

// CapabilityKeys returns all capability keys in document order.
func (o *Ontology) CapabilityKeys() []string {
	return append([]string(nil), o.capabilityKeys...)
}

// UseCaseKeys returns all use case keys in document order.
func (o *Ontology) UseCaseKeys() []string {
	return append([]string(nil), o.useCaseKeys...)
}

// OutcomeKeys returns all business outcome keys in document order.
func (o *Ontology) OutcomeKeys() []string {
	return append([]string(nil), o.outcomeKeys...)
}

// OutcomeWeights returns the raw (unnormalized) weight per outcome key.
func (o *Ontology) OutcomeWeights() map[string]float64 {
	weights := make(map[string]float64, len(o.outcomes))
	for key, bo := range o.outcomes {
		weights[key] = bo.Weight
	}
	return weights
}

// NormalizeWeights divides each weight by the total so the set sums to 1.0.
// A zero total leaves the weights untouched.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	var total float64
	for _, w := range weights {
		total += w
	}

	normalized := make(map[string]float64, len(weights))
	for key, w := range weights {
		if total > 0 {
			normalized[key] = w / total
		} else {
			normalized[key] = w
		}
	}
	return normalized
}

// sectionKeys walks the JSON token stream and returns the object keys of the
// named top-level section in document order. encoding/json maps don't keep
// key order, so ranking-stable iteration needs the original sequence.
func sectionKeys(data []byte, section string) []string {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Enter the top-level object.
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		name, ok := tok.(string)
		if !ok {
			return nil
		}
		if name != section {
			// Skip this section's value entirely.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
			continue
		}

		tok, err = dec.Token()
		if err != nil || tok != json.Delim('{') {
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
	return nil
}
