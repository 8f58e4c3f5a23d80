package deck

import (
	"strconv"
	"strings"
)

// ExportText renders a readable list: a "# name" header followed by one
// "<count>x<id>" line per entry, in the order given.
func ExportText(name string, entries []Entry) string {
	lines := []string{}
	if name != "" {
		lines = append(lines, "# "+name)
	}
	for _, e := range entries {
		lines = append(lines, strconv.Itoa(e.Count)+"x"+e.Card.ID)
	}
	return strings.Join(lines, "\n")
}
