package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// findReportTable returns the report_table whose header row contains the
// given token, falling back to the last table when none matches (the page
// puts the hourly data after the small index table). foldCase relaxes the
// match for the English page.
func findReportTable(doc *html.Node, headerToken string, foldCase bool) *html.Node {
	tables := collect(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && hasClass(n, "report_table")
	})
	if len(tables) == 0 {
		return nil
	}

	for _, table := range tables {
		for _, th := range collect(table, elementNamed("th")) {
			text := textContent(th)
			if foldCase {
				if strings.Contains(strings.ToLower(text), strings.ToLower(headerToken)) {
					return table
				}
			} else if strings.Contains(text, headerToken) {
				return table
			}
		}
	}

	return tables[len(tables)-1]
}

// tableDataRows returns the cell nodes (th and td) of every tbody row.
func tableDataRows(table *html.Node) [][]*html.Node {
	var rows [][]*html.Node
	for _, tbody := range collect(table, elementNamed("tbody")) {
		for _, tr := range collect(tbody, elementNamed("tr")) {
			cells := collect(tr, func(n *html.Node) bool {
				return n.Type == html.ElementNode && (n.Data == "th" || n.Data == "td")
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
	}
	return rows
}

// collect walks the subtree depth-first and returns every node matching the
// predicate.
func collect(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if match(node) {
			out = append(out, node)
			// matched nodes are not descended into; tables never nest here
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

func elementNamed(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// textContent concatenates all text nodes under n, trimmed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
