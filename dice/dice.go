// Package dice parses and resolves chat dice commands like "/r 2d6+3".
package dice

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxCount is the largest number of dice accepted in one group.
	MaxCount = 100
	// MaxSides is the largest die size accepted.
	MaxSides = 1000
)

// HelpText is shown to the user when a command has no valid dice group.
var HelpText = "could not read that roll — try /r 1d20+5 (up to 100 dice of up to 1000 sides each)"

var (
	prefixPattern   = regexp.MustCompile(`^/r(?:oll)?(?:\s+|$)`)
	groupPattern    = regexp.MustCompile(`(\d*)[dD](\d+)`)
	modifierPattern = regexp.MustCompile(`[+-]\s*(\d+)`)
)

// Group is one {count}d{sides} term of an expression.
type Group struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
}

// Expression is a parsed dice command: at least one valid group plus the net
// modifier summed from every signed integer term.
type Expression struct {
	Groups   []Group `json:"groups"`
	Modifier int     `json:"modifier"`
	Raw      string  `json:"raw"`
}

// IsCommand reports whether the input carries the dice command prefix. It does
// not validate the rest of the command.
func IsCommand(input string) bool {
	return prefixPattern.MatchString(strings.TrimSpace(input))
}

// Parse extracts the dice groups and net modifier from a command. A group with
// a count or die size out of range is dropped rather than failing the whole
// command. Parse returns nil when the prefix is missing or no valid group
// remains.
func Parse(input string) *Expression {
	trimmed := strings.TrimSpace(input)

	loc := prefixPattern.FindStringIndex(trimmed)
	if loc == nil {
		return nil
	}
	body := trimmed[loc[1]:]

	var groups []Group
	for _, m := range groupPattern.FindAllStringSubmatch(body, -1) {
		count := 1
		if m[1] != "" {
			count, _ = strconv.Atoi(m[1])
		}
		sides, _ := strconv.Atoi(m[2])

		if count < 1 || count > MaxCount || sides < 1 || sides > MaxSides {
			continue
		}
		groups = append(groups, Group{Count: count, Sides: sides})
	}
	if len(groups) == 0 {
		return nil
	}

	// Modifiers are whatever signed integers remain once the dice groups are
	// stripped out.
	rest := groupPattern.ReplaceAllString(body, "")
	modifier := 0
	for _, m := range modifierPattern.FindAllStringSubmatch(rest, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if strings.HasPrefix(m[0], "-") {
			n = -n
		}
		modifier += n
	}

	return &Expression{Groups: groups, Modifier: modifier, Raw: trimmed}
}

// Roll resolves the expression. Each group draws Count uniform integers in
// [1, Sides]. A nil rng falls back to the shared math/rand source; rolls do
// not need to be cryptographically secure.
func (e *Expression) Roll(rng *rand.Rand) Result {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	rolls := make([]GroupRoll, 0, len(e.Groups))
	total := e.Modifier
	for _, g := range e.Groups {
		gr := GroupRoll{Count: g.Count, Sides: g.Sides, Results: make([]int, g.Count)}
		for i := 0; i < g.Count; i++ {
			v := intn(g.Sides) + 1
			gr.Results[i] = v
			gr.Total += v
		}
		rolls = append(rolls, gr)
		total += gr.Total
	}

	return Result{Rolls: rolls, Modifier: e.Modifier, Total: total, Raw: e.Raw}
}
