package config

import "sort"

// Operators are the named operator families, P highest degree first.
var Operators = map[string]OperatorConfig{
	"ou":         {P: []float64{1, 1}},
	"slow_ou":    {P: []float64{1, 0.2}},
	"double":     {P: []float64{1, 2, 1}},
	"distinct":   {P: []float64{1, 3, 2}},
	"oscillator": {P: []float64{1, 0.4, 4}},
	"third":      {P: []float64{1, 4, 5, 2}},
	"anticausal": {P: []float64{1, -1}},
	"lead":       {P: []float64{1, 3, 2}, Q: []float64{1, 0.5}},
}

// Laws are the named jump laws shared by every operator family.
var Laws = map[string]LawConfig{
	"gaussian":     {Name: "gaussian", Variance: 1},
	"cauchy":       {Name: "alpha_stable", Alpha: 1, Scale: 1},
	"stable":       {Name: "alpha_stable", Alpha: 1.5, Scale: 1},
	"skewed":       {Name: "alpha_stable", Alpha: 1.2, Beta: 0.8, Scale: 0.5},
	"laplace":      {Name: "laplace", Scale: 1},
	"gamma":        {Name: "gamma", Shape: 2, Rate: 1},
	"poisson_sums": {Name: "compound_poisson", Rate: 3, Base: &LawConfig{Name: "gaussian", Variance: 1}},
}

// GetPreset combines an operator family with a law on top of the defaults.
// It returns nil if either name is unknown.
func GetPreset(op, lawName string) *Config {
	o, ok := Operators[op]
	if !ok {
		return nil
	}
	l, ok := Laws[lawName]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Operator = OperatorConfig{
		P:       append([]float64(nil), o.P...),
		Q:       append([]float64(nil), o.Q...),
		PoleTol: o.PoleTol,
	}
	cfg.Law = l
	if l.Base != nil {
		base := *l.Base
		cfg.Law.Base = &base
	}
	return cfg
}

// ListPresets returns the law names when op is a known family, otherwise
// the family names. Both lists are sorted.
func ListPresets(op string) []string {
	var names []string
	if _, ok := Operators[op]; ok {
		for name := range Laws {
			names = append(names, name)
		}
	} else {
		for name := range Operators {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
