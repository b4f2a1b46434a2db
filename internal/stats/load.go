package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// document mirrors the parent application's export, minus the department
// mapping which is re-parsed below to keep its key order.
type document struct {
	Establishments []Row     `json:"ips"`
	RiskTiers      []TierRow `json:"riesgos"`
}

// LoadFile reads and parses a metrics export.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return Parse(data)
}

// Parse decodes a metrics document. The "departamentos" object is walked
// token by token because encoding/json maps drop key order, and matching
// ties are contractually resolved by the order the parent supplied.
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	d := &Dataset{
		ByName:         map[string]Metrics{},
		Establishments: doc.Establishments,
		RiskTiers:      doc.RiskTiers,
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		key, _ := keyTok.(string)
		if key != "departamentos" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("metrics: %w", err)
			}
			continue
		}
		if _, err := dec.Token(); err != nil { // nested {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("metrics: %w", err)
			}
			name, _ := nameTok.(string)
			var m Metrics
			if err := dec.Decode(&m); err != nil {
				return nil, fmt.Errorf("metrics %q: %w", name, err)
			}
			if _, seen := d.ByName[name]; !seen {
				d.Names = append(d.Names, name)
			}
			d.ByName[name] = m
		}
		if _, err := dec.Token(); err != nil { // nested }
			return nil, fmt.Errorf("metrics: %w", err)
		}
	}
	return d, nil
}
