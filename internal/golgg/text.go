package golgg

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedText concatenates every text node under s with each piece trimmed,
// so "<td> 4 <b> kills</b></td>" reads "4kills".
func strippedText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return sb.String()
}

// skipFirst drops the first node of s. Label columns and header rows come
// first in every site table.
func skipFirst(s *goquery.Selection) *goquery.Selection {
	if s.Length() == 0 {
		return s
	}
	return s.Slice(1, goquery.ToEnd)
}
