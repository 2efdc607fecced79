package notifier

import (
	"fmt"
	"html"
	"strings"

	"slot-sniper/model"
	"slot-sniper/utils"
)

const (
	title   = "Slot Sniper – target slot available!"
	Subject = "Slot Sniper: Target slot available!"
)

// Format renders slots into an alert. The HTML variant carries a bold title
// and escaped slot fields, the plain variant is the same text without markup.
func Format(slots []model.Slot, bookingURL string) model.Message {
	return model.Message{
		Subject: Subject,
		HTML:    render(slots, bookingURL, true),
		Plain:   render(slots, bookingURL, false),
	}
}

func render(slots []model.Slot, bookingURL string, markup bool) string {
	esc := func(s string) string { return s }
	head := title
	if markup {
		esc = html.EscapeString
		head = "<b>" + title + "</b>"
	}

	lines := []string{head, ""}
	for _, s := range slots {
		lines = append(lines, fmt.Sprintf("%s %s  |  %s–%s  |  %s",
			utils.EmojiCalendar, esc(s.Date), esc(s.TimeStart), esc(s.TimeEnd), esc(s.Location)))
	}
	if bookingURL != "" {
		lines = append(lines, "", "Book now: "+esc(bookingURL))
	}

	return strings.Join(lines, "\n")
}
