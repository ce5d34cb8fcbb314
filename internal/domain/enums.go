package domain

import "fmt"

type FlowerKind string

const (
	Flower1 FlowerKind = "flower1"
	Flower2 FlowerKind = "flower2"
	Flower3 FlowerKind = "flower3"
)

// FlowerSpec describes how a flower kind is presented and unlocked.
type FlowerSpec struct {
	Kind    FlowerKind
	Name    string
	Asset   string
	Premium bool
}

// Flowers is the closed lookup table of plantable kinds, in display order.
var Flowers = []FlowerSpec{
	{Kind: Flower1, Name: "Daisy", Asset: "./model/flower1.glb"},
	{Kind: Flower2, Name: "Tulip", Asset: "./model/flower2.glb"},
	{Kind: Flower3, Name: "Lotus", Asset: "./model/flower3.glb", Premium: true},
}

// DefaultFlower is the kind preselected for a new planting.
const DefaultFlower = Flower1

// Spec returns the lookup entry for k.
func (k FlowerKind) Spec() (FlowerSpec, bool) {
	for _, f := range Flowers {
		if f.Kind == k {
			return f, true
		}
	}
	return FlowerSpec{}, false
}

// Valid reports whether k is one of the known kinds.
func (k FlowerKind) Valid() bool {
	_, ok := k.Spec()
	return ok
}

// ParseFlowerKind accepts the wire key ("flower3") or the display name ("Lotus").
func ParseFlowerKind(s string) (FlowerKind, error) {
	for _, f := range Flowers {
		if string(f.Kind) == s || f.Name == s {
			return f.Kind, nil
		}
	}
	return "", fmt.Errorf("unknown flower kind %q", s)
}

type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Periods lists every statistics bucket in display order.
var Periods = []Period{PeriodToday, PeriodWeekly, PeriodMonthly}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want today, weekly or monthly)", s)
}
