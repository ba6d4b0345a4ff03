package models

import "time"

// AnalyticsSummary aggregates RSVP activity across a user's designs.
type AnalyticsSummary struct {
	WindowStart     time.Time        `json:"window_start"`
	Totals          AnalyticsTotals  `json:"totals"`
	DailyResponses  []DailyCount     `json:"daily_responses"`
	Designs         []DesignStats    `json:"designs"`
	RecentResponses []RecentResponse `json:"recent_responses"`
}

// AnalyticsTotals are account-wide counters.
type AnalyticsTotals struct {
	Designs         int     `json:"designs"`
	Responses       int     `json:"responses"`
	Guests          int     `json:"guests"`
	ConfirmedGuests int     `json:"confirmed_guests"`
	AverageRSVPRate float64 `json:"average_rsvp_rate"`
}

// DailyCount is the number of responses received on one UTC day.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DesignStats summarises one design's guest list and responses.
type DesignStats struct {
	ID                 int64        `json:"id"`
	Title              string       `json:"title"`
	Template           *TemplateRef `json:"template"`
	Responses          int          `json:"responses"`
	Guests             int          `json:"guests"`
	RSVPCompletionRate float64      `json:"rsvp_completion_rate"`
}

// TemplateRef identifies the template a design was built from.
type TemplateRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RecentResponse is a response annotated with its design's title.
type RecentResponse struct {
	InvitationResponse
	DesignTitle string `json:"design_title"`
}

// CompletionRate is responses per invited guest, capped at 1. Designs
// without guests report 0.
func CompletionRate(responses, guests int) float64 {
	if guests <= 0 {
		return 0
	}
	rate := float64(responses) / float64(guests)
	if rate > 1 {
		return 1
	}
	return rate
}
