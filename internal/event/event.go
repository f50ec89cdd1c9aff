package event

import "strings"

// Sentinel values for fields that could not be resolved. Downstream
// consumers assume every field is populated, so an unresolved field always
// carries one of these instead of being empty or null.
const (
	NoTitle         = "No Title"
	NoOrganization  = "No Organization"
	NoStreet        = "No Street Address"
	NoCity          = "No City"
	NoState         = "No State"
	NoPostalCode    = "No Postal Code"
	NoCountry       = "No Country"
	NoMapLink       = "No Map Link"
	NoDate          = "No Date"
	NoTime          = "No Time"
	NoEndTime       = "No End Time"
	UnparsedTime    = "Unparsed Time"
	NoPhone         = "No Phone"
	NoImage         = "No Image"
	NoDescription   = "No Description"
	NoEmail         = "No Email"
	UnknownAgeGroup = "Unknown Age Group"
	NoTags          = "No Tags"
)

// Location is the structured address portion of an event.
type Location struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	MapLink    string `json:"map_link"`
}

// Event is the canonical record every source normalizes into. It is built
// once per pipeline pass, handed to the sink, and never mutated after.
type Event struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Location     Location `json:"location"`
	Dates        []string `json:"dates"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Phone        string   `json:"phone"`
	ImageURL     string   `json:"image_url"`
	Description  string   `json:"description"`
	EventURL     string   `json:"event_url"`
	Email        string   `json:"email"`
	Price        float64  `json:"price"`
	Ages         []string `json:"ages"`
	Tags         []string `json:"tags"`
}

// Key returns the identity used for idempotent upserts. Re-running the
// pipeline over the same source must map an event to the same key.
func Key(namespace, eventURL string) string {
	return namespace + "|" + eventURL
}

// Or returns v, or the sentinel when v is blank.
func Or(v, sentinel string) string {
	if strings.TrimSpace(v) == "" {
		return sentinel
	}
	return v
}

// OrList drops blank elements and returns the remainder, or a single
// sentinel element when nothing survives. Canonical lists are never empty.
func OrList(vs []string, sentinel string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{sentinel}
	}
	return out
}
