package util

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var locationClass = regexp.MustCompile(`(?i)location`)

// LocationNear walks forward from a matched listing element looking for the
// first sibling (or descendant of a following sibling) whose class hints at a
// location. ATS boards usually render the location right after the title.
func LocationNear(sel *goquery.Selection) string {
	found := ""

	scan := func(s *goquery.Selection) bool {
		if cls, ok := s.Attr("class"); ok && locationClass.MatchString(cls) {
			if t := CleanText(s.Text()); t != "" {
				found = t
				return true
			}
		}
		hit := false
		s.Find("[class]").EachWithBreak(func(_ int, d *goquery.Selection) bool {
			cls, _ := d.Attr("class")
			if !locationClass.MatchString(cls) {
				return true
			}
			if t := CleanText(d.Text()); t != "" {
				found = t
				hit = true
				return false
			}
			return true
		})
		return hit
	}

	cur := sel
	for depth := 0; depth < 4; depth++ {
		done := false
		cur.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if scan(s) {
				done = true
				return false
			}
			return true
		})
		if done {
			return NormalizeLocation(found)
		}
		cur = cur.Parent()
		if cur.Length() == 0 {
			break
		}
	}
	return ""
}
