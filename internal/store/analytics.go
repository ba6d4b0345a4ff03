package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"invitemaker/internal/models"
)

const (
	// AnalyticsWindowDays is the length of the daily response series.
	AnalyticsWindowDays = 30

	// recentResponseLimit caps the recent responses feed.
	recentResponseLimit = 10
)

// AnalyticsStore computes per-user RSVP statistics.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore with the given database connection.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// WindowStart returns UTC midnight of the first day of the reporting window
// ending on now's day.
func WindowStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(AnalyticsWindowDays - 1))
}

// Summary builds the analytics summary for userID. All queries run in one
// read-only transaction so the figures are mutually consistent.
func (s *AnalyticsStore) Summary(ctx context.Context, userID int64, now time.Time) (*models.AnalyticsSummary, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("analytics begin tx: %w", err)
	}
	defer tx.Rollback()

	summary := &models.AnalyticsSummary{WindowStart: WindowStart(now)}

	if summary.Designs, summary.Totals, err = designStats(ctx, tx, userID); err != nil {
		return nil, err
	}

	counts, err := dailyCounts(ctx, tx, userID, summary.WindowStart)
	if err != nil {
		return nil, err
	}
	summary.DailyResponses = fillDays(summary.WindowStart, AnalyticsWindowDays, counts)

	if summary.RecentResponses, err = recentResponses(ctx, tx, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("analytics commit: %w", err)
	}
	return summary, nil
}

// designStats returns per-design counters, most recently edited first, and
// the account totals derived from them.
func designStats(ctx context.Context, tx *sql.Tx, userID int64) ([]models.DesignStats, models.AnalyticsTotals, error) {
	var totals models.AnalyticsTotals

	rows, err := tx.QueryContext(ctx, `
		SELECT d.id, d.title, t.id, t.name,
			(SELECT COUNT(*) FROM invitation_responses r WHERE r.design_id = d.id),
			(SELECT COUNT(*) FROM guests g WHERE g.design_id = d.id),
			(SELECT COUNT(*) FROM guests g WHERE g.design_id = d.id AND g.is_confirmed)
		FROM designs d
		LEFT JOIN templates t ON t.id = d.template_id
		WHERE d.user_id = $1
		ORDER BY d.updated_at DESC, d.id DESC
	`, userID)
	if err != nil {
		return nil, totals, fmt.Errorf("analytics designs: %w", err)
	}
	defer rows.Close()

	var (
		stats       = []models.DesignStats{}
		rateSum     float64
		ratedDesign int
	)
	for rows.Next() {
		var (
			ds        models.DesignStats
			tmplID    sql.NullInt64
			tmplName  sql.NullString
			confirmed int
		)
		if err := rows.Scan(&ds.ID, &ds.Title, &tmplID, &tmplName, &ds.Responses, &ds.Guests, &confirmed); err != nil {
			return nil, totals, fmt.Errorf("scan analytics design: %w", err)
		}
		if tmplID.Valid {
			ds.Template = &models.TemplateRef{ID: tmplID.Int64, Name: tmplName.String}
		}
		ds.RSVPCompletionRate = models.CompletionRate(ds.Responses, ds.Guests)

		totals.Designs++
		totals.Responses += ds.Responses
		totals.Guests += ds.Guests
		totals.ConfirmedGuests += confirmed
		if ds.Guests > 0 {
			rateSum += ds.RSVPCompletionRate
			ratedDesign++
		}
		stats = append(stats, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, totals, fmt.Errorf("analytics designs rows: %w", err)
	}

	if ratedDesign > 0 {
		totals.AverageRSVPRate = rateSum / float64(ratedDesign)
	}
	return stats, totals, nil
}

// dailyCounts returns response counts keyed by UTC date (YYYY-MM-DD) since start.
func dailyCounts(ctx context.Context, tx *sql.Tx, userID int64, start time.Time) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT to_char(r.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM invitation_responses r
		JOIN designs d ON d.id = r.design_id
		WHERE d.user_id = $1 AND r.created_at >= $2
		GROUP BY day
	`, userID, start)
	if err != nil {
		return nil, fmt.Errorf("analytics daily: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("scan analytics day: %w", err)
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

// fillDays expands sparse per-day counts into a contiguous series.
func fillDays(start time.Time, days int, counts map[string]int) []models.DailyCount {
	series := make([]models.DailyCount, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, models.DailyCount{Date: day, Count: counts[day]})
	}
	return series
}

// recentResponses returns the latest responses across all of userID's designs.
func recentResponses(ctx context.Context, tx *sql.Tx, userID int64) ([]models.RecentResponse, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT r.id, r.design_id, r.name, r.phone, r.message, r.created_at, d.title
		FROM invitation_responses r
		JOIN designs d ON d.id = r.design_id
		WHERE d.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2
	`, userID, recentResponseLimit)
	if err != nil {
		return nil, fmt.Errorf("analytics recent: %w", err)
	}
	defer rows.Close()

	recent := []models.RecentResponse{}
	for rows.Next() {
		var rr models.RecentResponse
		if err := rows.Scan(&rr.ID, &rr.DesignID, &rr.Name, &rr.Phone, &rr.Message, &rr.CreatedAt, &rr.DesignTitle); err != nil {
			return nil, fmt.Errorf("scan analytics recent: %w", err)
		}
		recent = append(recent, rr)
	}
	return recent, rows.Err()
}
