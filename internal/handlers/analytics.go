package handlers

import (
	"net/http"
	"time"
)

// Analytics serves the dashboard summary of the caller's designs.
type Analytics struct {
	analytics AnalyticsRepo
	now       func() time.Time
}

// NewAnalytics creates a new Analytics handler group.
func NewAnalytics(analytics AnalyticsRepo) *Analytics {
	return &Analytics{analytics: analytics, now: time.Now}
}

// Summary returns totals, the daily response series, per-design statistics
// and the latest responses.
func (a *Analytics) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := a.analytics.Summary(r.Context(), userID, a.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
