package nrc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/reactorwatch/reactorwatch/pkg/ledger"
)

// Row prefixes that mark table headers rather than unit rows.
var headerPrefixes = []string{"region", "unit power", "plant", "unit"}

// ParseUnits extracts (unit, power_pct) readings from the status page
// HTML. Table rows whose last cell is a bare percentage in [0,100]
// become readings; the remaining cells joined make the unit label.
// Header rows are skipped and duplicate rows collapsed.
//
// Returns ErrNoUnits when nothing parses, so a silently restructured
// page fails the run instead of recording an empty day.
func ParseUnits(page string) ([]ledger.Reading, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse status page html: %w", err)
	}

	var readings []ledger.Reading
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if reading, ok := parseRow(n); ok {
				key := fmt.Sprintf("%s|%d", reading.Unit, reading.PowerPct)
				if !seen[key] {
					seen[key] = true
					readings = append(readings, reading)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(readings) == 0 {
		return nil, ErrNoUnits
	}
	return readings, nil
}

// parseRow turns one table row into a reading, if it looks like one.
func parseRow(tr *html.Node) (ledger.Reading, bool) {
	cells := cellTexts(tr)
	if len(cells) < 2 {
		return ledger.Reading{}, false
	}

	powerRaw := strings.TrimSpace(strings.ReplaceAll(cells[len(cells)-1], "%", ""))
	if !isDigits(powerRaw) {
		return ledger.Reading{}, false
	}
	power, err := strconv.Atoi(powerRaw)
	if err != nil || power < 0 || power > 100 {
		return ledger.Reading{}, false
	}

	unit := strings.TrimSpace(strings.Join(cells[:len(cells)-1], " "))
	if unit == "" {
		return ledger.Reading{}, false
	}
	lower := strings.ToLower(unit)
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ledger.Reading{}, false
		}
	}

	return ledger.Reading{Unit: unit, PowerPct: power}, true
}

// cellTexts collects the text of each td/th cell in a row.
func cellTexts(tr *html.Node) []string {
	var cells []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, nodeText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return cells
}

// nodeText joins all text content under a node with single spaces.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
