package domain

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// JournalStats summarises completed sessions. Durations are in minutes.
type JournalStats struct {
	Sessions             int
	ActiveDays           int
	SessionsPerActiveDay float64
	MeanMinutes          float64
	MedianMinutes        float64
	P90Minutes           float64
	LongestMinutes       float64
	BestStreak           uint64
}

func Summarize(entries []JournalEntry) (JournalStats, error) {
	out := JournalStats{Sessions: len(entries)}
	if len(entries) == 0 {
		return out, nil
	}
	minutes := make(stats.Float64Data, 0, len(entries))
	days := map[int64]struct{}{}
	for _, e := range entries {
		minutes = append(minutes, e.Session.EndAt.Sub(e.Session.StartAt).Minutes())
		days[e.Session.EndAt.Unix()/86400] = struct{}{}
		out.BestStreak = max(out.BestStreak, e.BestStreak)
	}
	out.ActiveDays = len(days)
	out.SessionsPerActiveDay = float64(out.Sessions) / float64(out.ActiveDays)

	var err error
	if out.MeanMinutes, err = minutes.Mean(); err != nil {
		return JournalStats{}, fmt.Errorf("mean: %w", err)
	}
	if out.MedianMinutes, err = minutes.Median(); err != nil {
		return JournalStats{}, fmt.Errorf("median: %w", err)
	}
	if out.P90Minutes, err = minutes.PercentileNearestRank(90); err != nil {
		return JournalStats{}, fmt.Errorf("p90: %w", err)
	}
	if out.LongestMinutes, err = minutes.Max(); err != nil {
		return JournalStats{}, fmt.Errorf("max: %w", err)
	}
	return out, nil
}
