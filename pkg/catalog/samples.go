package catalog

import "slices"

// Sample is a demonstration input with its expected acceptance.
type Sample struct {
	Input  string `json:"input"`
	Accept bool   `json:"accept"`
}

var samples = map[string][]Sample{
	ABPatternName: {
		{"abba", false},
		{"aababaabb", false},
		{"abaababa", true},
		{"abbabba", false},
		{"abababababab", false},
		{"babbaaaba", false},
		{"bbbbbbb", false},
		{"aaaaaaa", true},
		{"ababba", false},
		{"abaaaaabaaaa", true},
		{"aabbbaaa", false},
	},
	IdentifierName: {
		{"A123", true},
		{"Sogamoso2025", true},
		{"Uptc9", true},
		{"X0", true},
		{"Z99", true},
		{"1234", false},
		{"soga2025", false},
		{"UPTC", false},
		{"aa99", false},
		{"AAT", false},
	},
	ProductCodeName: {
		{"AS345S", true},
		{"CV657C", true},
		{"HI890I", true},
		{"BI645K", true},
		{"ASD123S", false},
		{"HL001V", false},
		{"39CVB0", false},
		{"Im456c", false},
		{"HJCMB579ZX", false},
	},
	EmailName: {
		{"juan3@uptc.edu.co", true},
		{"maria@uptc.edu.co", true},
		{"abc123@uptc.edu.co", true},
		{"123juan@uptc.edu.co", false},
		{"juan@uptc.com", false},
		{"MARIA@uptc.edu.co", false},
	},
}

func init() {
	samples[EmailStrictName] = samples[EmailName]
}

// Samples returns the demonstration inputs for a built-in automaton, or nil.
func Samples(name string) []Sample {
	return slices.Clone(samples[name])
}

// Inputs returns the sample strings without their expectations.
func Inputs(name string) []string {
	var out []string
	for _, s := range samples[name] {
		out = append(out, s.Input)
	}
	return out
}
