package component

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the behavioral category of an agent
type Kind uint8

const (
	KindCivilian Kind = iota
	KindZombie
	KindMedic
	KindCorpse

	// KindCount is the number of valid kinds, also the length of Counts
	KindCount
)

var kindNames = [KindCount]string{"civilian", "zombie", "medic", "corpse"}

// Kinds lists every valid kind in declaration order
var Kinds = [KindCount]Kind{KindCivilian, KindZombie, KindMedic, KindCorpse}

// Valid reports whether k is one of the enumerated kinds
func (k Kind) Valid() bool {
	return k < KindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a case-insensitive kind name back to a Kind
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", k)
	}
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Counts is a per-kind tally indexed by Kind
type Counts [KindCount]int

// Total sums all kinds
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Share returns the fraction of the population of kind k, 0 for an empty population
func (c Counts) Share(k Kind) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[k]) / float64(total)
}

// MarshalJSON renders counts as an object keyed by kind name
func (c Counts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, KindCount)
	for _, k := range Kinds {
		m[k.String()] = c[k]
	}
	return json.Marshal(m)
}

func (c *Counts) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Counts
	for name, n := range m {
		k, err := ParseKind(name)
		if err != nil {
			return err
		}
		out[k] = n
	}
	*c = out
	return nil
}
