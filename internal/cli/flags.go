package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/spf13/pflag"
)

// positionValue is a pflag.Value for "x,y,z" points.
type positionValue struct {
	pos *domain.Position
}

var _ pflag.Value = (*positionValue)(nil)

func (v *positionValue) String() string {
	if v.pos == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", v.pos.X, v.pos.Y, v.pos.Z)
}

func (v *positionValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("coordinate %q: %w", p, err)
		}
		xyz[i] = f
	}
	v.pos = &domain.Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

func (v *positionValue) Type() string { return "x,y,z" }

// periodValue is a pflag.Value restricted to the statistics periods.
type periodValue struct {
	period domain.Period
}

var _ pflag.Value = (*periodValue)(nil)

func newPeriodValue(def domain.Period) *periodValue {
	return &periodValue{period: def}
}

func (v *periodValue) String() string { return string(v.period) }

func (v *periodValue) Set(s string) error {
	p, err := domain.ParsePeriod(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return err
	}
	v.period = p
	return nil
}

func (v *periodValue) Type() string { return "period" }
