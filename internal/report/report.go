// Package report exports the outcome of a played game as JSON.
package report

import (
	"time"

	"github.com/lox/whackamole/internal/fileutil"
	"github.com/lox/whackamole/internal/game"
	"github.com/lox/whackamole/internal/statistics"
)

// Report is the JSON document written by play --results
type Report struct {
	SessionID string    `json:"session_id"`
	Seed      int64     `json:"seed"`
	Started   time.Time `json:"started"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Completed bool      `json:"completed"`

	Rules Rules `json:"rules"`

	Score            int                `json:"score"`
	Misses           int                `json:"misses"`
	Accuracy         float64            `json:"accuracy"`
	HitRate          float64            `json:"hit_rate"`
	MeanReactionMS   int64              `json:"mean_reaction_ms"`
	MedianReactionMS int64              `json:"median_reaction_ms"`
	BestReactionMS   int64              `json:"best_reaction_ms"`
	Stats            statistics.Session `json:"stats"`
}

// Rules mirrors game.Rules with JSON-friendly durations
type Rules struct {
	Rows        int   `json:"rows"`
	Cols        int   `json:"cols"`
	VisibleMS   int64 `json:"mole_visible_ms"`
	IntervalMS  int64 `json:"spawn_interval_ms"`
	TargetScore int   `json:"target_score"`
}

// New builds a report from a controller result
func New(result game.Result, seed int64) Report {
	stats := result.Stats
	return Report{
		SessionID: result.SessionID,
		Seed:      seed,
		Started:   result.Started,
		ElapsedMS: result.Elapsed.Milliseconds(),
		Completed: result.Completed,
		Rules: Rules{
			Rows:        result.Rules.Rows,
			Cols:        result.Rules.Cols,
			VisibleMS:   result.Rules.Visible.Milliseconds(),
			IntervalMS:  result.Rules.Interval.Milliseconds(),
			TargetScore: result.Rules.TargetScore,
		},
		Score:            result.Snapshot.Score,
		Misses:           result.Snapshot.Misses,
		Accuracy:         stats.Accuracy(),
		HitRate:          stats.HitRate(),
		MeanReactionMS:   stats.MeanReaction().Milliseconds(),
		MedianReactionMS: stats.MedianReaction().Milliseconds(),
		BestReactionMS:   stats.BestReaction().Milliseconds(),
		Stats:            stats,
	}
}

// Write saves the report atomically
func Write(filename string, r Report) error {
	return fileutil.WriteJSONAtomic(filename, r, 0o644)
}
