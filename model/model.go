package model

// SlotTarget is the booking window the user is waiting for.
type SlotTarget struct {
	Date      string
	TimeStart string
	TimeEnd   string
	Location  string
}

// Slot is a candidate entry extracted from a booking page.
// RawText is kept for logs only.
type Slot struct {
	Date      string
	TimeStart string
	TimeEnd   string
	Location  string
	RawText   string
}

// Hints are optional CSS selectors for the page being watched.
type Hints struct {
	Container string
	Date      string
	Time      string
	Location  string
}

// Message is a rendered alert. HTML goes to channels that render markup,
// Plain to the rest.
type Message struct {
	Subject string
	HTML    string
	Plain   string
}

type Notification struct {
	Topic    string
	Title    string
	Tags     []string
	Message  string
	Priority int
}
