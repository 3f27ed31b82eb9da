package dice

import (
	"fmt"
	"strings"
)

// GroupRoll captures the individual outcomes and subtotal for one dice group.
type GroupRoll struct {
	Count   int   `json:"count"`
	Sides   int   `json:"sides"`
	Results []int `json:"results"`
	Total   int   `json:"total"`
}

// Result is a fully resolved roll. Raw retains the original command text for
// display and audit.
type Result struct {
	Rolls    []GroupRoll `json:"rolls"`
	Modifier int         `json:"modifier"`
	Total    int         `json:"total"`
	Raw      string      `json:"raw"`
}

// String renders the roll for chat. Single-die groups show just the value,
// multi-die groups show the bracketed outcomes with their subtotal, and the
// grand total appears only when more than one component contributed.
func (r Result) String() string {
	var b strings.Builder

	for i, gr := range r.Rolls {
		if i > 0 {
			b.WriteString(" + ")
		}
		if gr.Count == 1 {
			fmt.Fprintf(&b, "%d", gr.Total)
			continue
		}
		parts := make([]string, len(gr.Results))
		for j, v := range gr.Results {
			parts[j] = fmt.Sprintf("%d", v)
		}
		fmt.Fprintf(&b, "[%s] = %d", strings.Join(parts, ", "), gr.Total)
	}

	if r.Modifier > 0 {
		fmt.Fprintf(&b, " + %d", r.Modifier)
	} else if r.Modifier < 0 {
		fmt.Fprintf(&b, " - %d", -r.Modifier)
	}

	if len(r.Rolls) > 1 || r.Modifier != 0 {
		fmt.Fprintf(&b, " = %d", r.Total)
	}

	return b.String()
}
