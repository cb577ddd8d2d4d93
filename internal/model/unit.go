package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// PropertiesValue is a loosely typed property bag
type PropertiesValue map[string]any

// UnitElementData is the stored form of one element
type UnitElementData struct {
	Properties PropertiesValue     `json:"properties"`
	TableCells [][]PropertiesValue `json:"tableCells,omitempty"`
}

// UnitPageData is the stored form of one page
type UnitPageData struct {
	Properties PropertiesValue             `json:"properties"`
	Elements   map[string]*UnitElementData `json:"elements"`
}

// UnitData is the stored form of a whole unit
type UnitData struct {
	Pages      map[string]*UnitPageData `json:"pages"`
	Properties PropertiesValue          `json:"properties"`
}

// NewUnitData creates an empty unit
func NewUnitData() *UnitData {
	return &UnitData{
		Pages:      make(map[string]*UnitPageData),
		Properties: make(PropertiesValue),
	}
}

// NewUnitPageData creates an empty page
func NewUnitPageData() *UnitPageData {
	return &UnitPageData{
		Properties: make(PropertiesValue),
		Elements:   make(map[string]*UnitElementData),
	}
}

// ParseUnitData decodes a unit from JSON. Numbers keep their JSON representation
// until a property parses them.
func ParseUnitData(data []byte) (*UnitData, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	unit := NewUnitData()
	if err := dec.Decode(unit); err != nil {
		return nil, fmt.Errorf("invalid unit data: %w", err)
	}
	unit.normalize()
	return unit, nil
}

// LoadUnitData reads a unit from a JSON file
func LoadUnitData(path string) (*UnitData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit file: %w", err)
	}
	return ParseUnitData(b)
}

// Marshal encodes the unit as indented JSON
func (u *UnitData) Marshal() ([]byte, error) {
	return json.MarshalIndent(u, "", "  ")
}

// PageIDs returns page identifiers in a stable order
func (u *UnitData) PageIDs() []string {
	ids := make([]string, 0, len(u.Pages))
	for id := range u.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ElementIDs returns element identifiers of a page in a stable order
func (p *UnitPageData) ElementIDs() []string {
	ids := make([]string, 0, len(p.Elements))
	for id := range p.Elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String returns a property as a string, or "" when it is absent
func (pv PropertiesValue) String(key string) string {
	raw, ok := pv[key]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

func (u *UnitData) normalize() {
	if u.Pages == nil {
		u.Pages = make(map[string]*UnitPageData)
	}
	if u.Properties == nil {
		u.Properties = make(PropertiesValue)
	}
	for id, page := range u.Pages {
		if page == nil {
			page = NewUnitPageData()
			u.Pages[id] = page
		}
		if page.Properties == nil {
			page.Properties = make(PropertiesValue)
		}
		if page.Elements == nil {
			page.Elements = make(map[string]*UnitElementData)
		}
		for eid, el := range page.Elements {
			if el == nil {
				el = &UnitElementData{}
				page.Elements[eid] = el
			}
			if el.Properties == nil {
				el.Properties = make(PropertiesValue)
			}
		}
	}
}
