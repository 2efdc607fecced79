// Package extractor turns a booking page into candidate slots.
//
// Three strategies are tried. When a container selector is configured it is
// the only one used. Otherwise table rows and elements carrying data-date
// attributes are both collected and concatenated.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"slot-sniper/matcher"
	"slot-sniper/model"
)

// Extract parses html and returns every candidate slot it can find.
// Finding nothing is not an error.
func Extract(html string, hints model.Hints) ([]model.Slot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	if hints.Container != "" {
		return fromContainers(doc, hints), nil
	}

	slots := fromTables(doc)
	slots = append(slots, fromDataAttributes(doc)...)

	return slots, nil
}

func fromContainers(doc *goquery.Document, hints model.Hints) []model.Slot {
	slots := make([]model.Slot, 0)

	doc.Find(hints.Container).Each(func(_ int, el *goquery.Selection) {
		dateEl := first(el, hints.Date)
		timeEl := first(el, hints.Time)
		if dateEl == nil && timeEl == nil {
			return
		}
		locEl := first(el, hints.Location)

		start, end := matcher.ParseTimeRange(text(timeEl))
		slots = append(slots, model.Slot{
			Date:      text(dateEl),
			TimeStart: start,
			TimeEnd:   end,
			Location:  text(locEl),
			RawText:   text(el),
		})
	})

	return slots
}

// fromTables reads date, time range and location from the first three cells
// of every row except each table's header row.
func fromTables(doc *goquery.Document) []model.Slot {
	slots := make([]model.Slot, 0)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := row.Find("td, th")
			if cells.Length() < 3 {
				return
			}

			texts := cells.Map(func(_ int, c *goquery.Selection) string {
				return text(c)
			})
			start, end := matcher.ParseTimeRange(texts[1])
			slots = append(slots, model.Slot{
				Date:      texts[0],
				TimeStart: start,
				TimeEnd:   end,
				Location:  texts[2],
				RawText:   strings.Join(texts, " | "),
			})
		})
	})

	return slots
}

func fromDataAttributes(doc *goquery.Document) []model.Slot {
	slots := make([]model.Slot, 0)

	doc.Find("[data-date]").Each(func(_ int, el *goquery.Selection) {
		date := el.AttrOr("data-date", "")
		timeRange := firstAttr(el, "data-time", "data-time-range")
		loc := firstAttr(el, "data-location", "data-venue")
		if date == "" && timeRange == "" && loc == "" {
			return
		}

		start, end := matcher.ParseTimeRange(timeRange)
		slots = append(slots, model.Slot{
			Date:      date,
			TimeStart: start,
			TimeEnd:   end,
			Location:  loc,
			RawText:   text(el),
		})
	})

	return slots
}

// first returns the first descendant matching selector, or nil when the
// selector is empty or matches nothing.
func first(el *goquery.Selection, selector string) *goquery.Selection {
	if selector == "" {
		return nil
	}
	found := el.Find(selector).First()
	if found.Length() == 0 {
		return nil
	}
	return found
}

func firstAttr(el *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v := el.AttrOr(name, ""); v != "" {
			return v
		}
	}
	return ""
}

func text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
