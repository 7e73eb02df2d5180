package statistics

import (
	"math"
	"sort"
	"time"
)

// Session tracks what happened during a single game
type Session struct {
	Spawns    int             `json:"spawns"`
	Hits      int             `json:"hits"`
	WrongHole int             `json:"wrong_hole"` // clicks on a hole without the mole
	EmptyHole int             `json:"empty_hole"` // clicks while no mole was up
	Timeouts  int             `json:"timeouts"`   // moles that went down unwhacked
	Reactions []time.Duration `json:"reactions_ns"`
}

// RecordSpawn counts a mole appearance
func (s *Session) RecordSpawn() {
	s.Spawns++
}

// RecordHit counts a hit and the time it took to land
func (s *Session) RecordHit(reaction time.Duration) {
	s.Hits++
	s.Reactions = append(s.Reactions, reaction)
}

// RecordWrongHole counts a click on the wrong hole
func (s *Session) RecordWrongHole() {
	s.WrongHole++
}

// RecordEmptyHole counts a click with no mole up
func (s *Session) RecordEmptyHole() {
	s.EmptyHole++
}

// RecordTimeout counts a mole that escaped
func (s *Session) RecordTimeout() {
	s.Timeouts++
}

// Misses returns the total number of misses of every kind
func (s *Session) Misses() int {
	return s.WrongHole + s.EmptyHole + s.Timeouts
}

// Clicks returns the number of clicks that landed on the grid
func (s *Session) Clicks() int {
	return s.Hits + s.WrongHole + s.EmptyHole
}

// Accuracy returns the fraction of clicks that were hits
func (s *Session) Accuracy() float64 {
	clicks := s.Clicks()
	if clicks == 0 {
		return 0
	}
	return float64(s.Hits) / float64(clicks)
}

// HitRate returns the fraction of spawned moles that were whacked
func (s *Session) HitRate() float64 {
	if s.Spawns == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Spawns)
}

// MeanReaction returns the average time from a mole appearing to it being hit
func (s *Session) MeanReaction() time.Duration {
	if len(s.Reactions) == 0 {
		return 0
	}
	var sum time.Duration
	for _, r := range s.Reactions {
		sum += r
	}
	return sum / time.Duration(len(s.Reactions))
}

// BestReaction returns the fastest hit
func (s *Session) BestReaction() time.Duration {
	if len(s.Reactions) == 0 {
		return 0
	}
	best := s.Reactions[0]
	for _, r := range s.Reactions[1:] {
		if r < best {
			best = r
		}
	}
	return best
}

// MedianReaction returns the median hit time
func (s *Session) MedianReaction() time.Duration {
	if len(s.Reactions) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(s.Reactions))
	copy(sorted, s.Reactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Outcome is the result of one finished (or abandoned) game
type Outcome struct {
	Won      bool
	Score    int
	Misses   int
	Duration time.Duration
	Session  Session
}

// Aggregate accumulates outcomes across many games
type Aggregate struct {
	Games     int
	Wins      int
	SumScore  float64
	SumMisses float64
	SumMiss2  float64 // Sum of squares for variance calculation

	// Only completed games contribute durations
	SumDuration time.Duration

	Hits      int
	WrongHole int
	EmptyHole int
	Timeouts  int
	Reactions []time.Duration
}

// Add incorporates a game result
func (a *Aggregate) Add(o Outcome) {
	a.Games++
	if o.Won {
		a.Wins++
		a.SumDuration += o.Duration
	}
	a.SumScore += float64(o.Score)
	a.SumMisses += float64(o.Misses)
	a.SumMiss2 += float64(o.Misses) * float64(o.Misses)

	a.Hits += o.Session.Hits
	a.WrongHole += o.Session.WrongHole
	a.EmptyHole += o.Session.EmptyHole
	a.Timeouts += o.Session.Timeouts
	a.Reactions = append(a.Reactions, o.Session.Reactions...)
}

// Abandoned returns the number of games that never reached the target
func (a *Aggregate) Abandoned() int {
	return a.Games - a.Wins
}

// WinRate returns the fraction of games won
func (a *Aggregate) WinRate() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Games)
}

// MeanScore returns the average final score
func (a *Aggregate) MeanScore() float64 {
	if a.Games == 0 {
		return 0
	}
	return a.SumScore / float64(a.Games)
}

// MeanMisses returns the average number of misses per game
func (a *Aggregate) MeanMisses() float64 {
	if a.Games == 0 {
		return 0
	}
	return a.SumMisses / float64(a.Games)
}

// MissesStdDev returns the sample standard deviation of misses per game
func (a *Aggregate) MissesStdDev() float64 {
	if a.Games < 2 {
		return 0
	}
	mean := a.MeanMisses()
	variance := (a.SumMiss2 - float64(a.Games)*mean*mean) / float64(a.Games-1)
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// MeanDuration returns the average time taken to win
func (a *Aggregate) MeanDuration() time.Duration {
	if a.Wins == 0 {
		return 0
	}
	return a.SumDuration / time.Duration(a.Wins)
}

// MeanReaction returns the average hit time over every game
func (a *Aggregate) MeanReaction() time.Duration {
	s := Session{Reactions: a.Reactions}
	return s.MeanReaction()
}

// MedianReaction returns the median hit time over every game
func (a *Aggregate) MedianReaction() time.Duration {
	s := Session{Reactions: a.Reactions}
	return s.MedianReaction()
}
