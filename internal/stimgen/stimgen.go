// Package stimgen generates boolean stimulus sequences for driving an
// element's input edges, generalizing the teacher's util/valgen
// int-generator closures from CGRA register values to logic levels.
package stimgen

import "strings"

// MakeConstGen returns a generator that always yields value.
func MakeConstGen(value bool) func() bool {
	return func() bool {
		return value
	}
}

// MakeToggleGen returns a generator that starts at start and flips on
// every call, suitable for driving a clock input.
func MakeToggleGen(start bool) func() bool {
	current := !start
	return func() bool {
		current = !current
		return current
	}
}

// MakePatternGen returns a generator that cycles through pattern in
// order, repeating once it reaches the end. Calling it with an empty
// pattern always yields false.
func MakePatternGen(pattern []bool) func() bool {
	i := 0
	return func() bool {
		if len(pattern) == 0 {
			return false
		}
		v := pattern[i%len(pattern)]
		i++
		return v
	}
}

// ParseSpec builds a generator from a command-line-friendly spec
// string: "clock" drives MakeToggleGen(false), "0" or "1" drives
// MakeConstGen, and anything else is parsed as a comma-separated
// pattern of 0s and 1s (e.g. "1,0,0,1") driving MakePatternGen. An
// unrecognized bit in a pattern is treated as false.
func ParseSpec(spec string) func() bool {
	switch spec {
	case "clock":
		return MakeToggleGen(false)
	case "0":
		return MakeConstGen(false)
	case "1":
		return MakeConstGen(true)
	}

	fields := strings.Split(spec, ",")
	pattern := make([]bool, len(fields))
	for i, f := range fields {
		pattern[i] = strings.TrimSpace(f) == "1"
	}
	return MakePatternGen(pattern)
}
