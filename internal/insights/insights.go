// Package insights turns already fetched check-ins and journal dates into the
// numbers the dashboard and history views show. Everything here is pure.
package insights

import (
	"math"
	"sort"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
)

// ChartWindow is the number of check-ins plotted.
const ChartWindow = 7

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendSteady    = "steady"

	noDataLabel = "No data"
	noDataTrend = "N/A"
)

// ChartPoint is one bar of the mood chart.
type ChartPoint struct {
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Mood        int         `json:"mood"`
	MoodName    models.Mood `json:"moodName"`
	StressLevel int         `json:"stressLevel"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Summary is the overall mood over the chart window.
type Summary struct {
	Label string `json:"label"`
	Trend string `json:"trend"`
}

// ChartSeries takes the newest ChartWindow check-ins of a newest-first list and
// returns them oldest first. Dates and times are rendered in loc.
func ChartSeries(checkIns []models.MoodCheckIn, loc *time.Location) []ChartPoint {
	if loc == nil {
		loc = time.Local
	}

	n := len(checkIns)
	if n > ChartWindow {
		n = ChartWindow
	}

	points := make([]ChartPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		c := checkIns[i]
		at := c.CreatedAt.In(loc)
		points = append(points, ChartPoint{
			Date:        at.Format("Jan 2"),
			Time:        at.Format("3:04 PM"),
			Mood:        c.Mood.Value(),
			MoodName:    c.Mood,
			StressLevel: c.StressLevel,
			CreatedAt:   c.CreatedAt,
		})
	}
	return points
}

// Summarize averages the mood values of points and compares the last point with the first.
func Summarize(points []ChartPoint) Summary {
	if len(points) == 0 {
		return Summary{Label: noDataLabel, Trend: noDataTrend}
	}

	total := 0
	for _, p := range points {
		total += p.Mood
	}
	avg := int(math.Round(float64(total) / float64(len(points))))

	label := noDataLabel
	if mood, ok := models.MoodFromValue(avg); ok {
		label = string(mood)
	}

	first, last := points[0].Mood, points[len(points)-1].Mood
	trend := TrendSteady
	switch {
	case last > first:
		trend = TrendImproving
	case last < first:
		trend = TrendDeclining
	}

	return Summary{Label: label, Trend: trend}
}

// JournalStreak counts consecutive calendar days with at least one entry, ending
// today or yesterday. Days are taken in now's location.
func JournalStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	loc := now.Location()
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := startOfDay(d.In(loc))
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	yesterday := startOfDay(now).AddDate(0, 0, -1)
	if days[0].Before(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
