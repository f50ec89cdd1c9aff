package event

// Draft is the partially extracted form of an Event produced by a source
// adapter's parse phase. Blank fields mean "unset", not the final sentinel;
// sentinels are applied exactly once, when the draft is normalized into a
// canonical Event. Raw* fields hold free text awaiting normalization, while
// their cooked counterparts are set directly by sources that already carry
// structured data.
type Draft struct {
	Source   string
	Category string

	Name         string
	Organization string

	// Location holds whatever structured address parts the source exposes.
	// Address carries a free-text address for geocode enrichment.
	Location Location
	Address  string

	RawDates []string

	// RawTime is a free-text time range ("9:00 am - 3:00 pm"). StartTime
	// and EndTime are set instead when the source pre-splits them.
	RawTime   string
	StartTime string
	EndTime   string

	Phone       string
	ImageURL    string
	Description string
	EventURL    string
	Email       string

	// RawPrice is scanned for the first numeric token; Price/PriceKnown is
	// used when the source carries a numeric price already.
	RawPrice   string
	Price      float64
	PriceKnown bool

	// RawGrades holds a grade range ("K - 5") that maps to an age range
	// through the closed grade table.
	RawGrades string

	Ages []string
	Tags []string
}
