package projection

import (
	"math"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// StageCount is the number of customers in one stage.
type StageCount struct {
	Stage entity.Stage
	Count int
}

// Summary holds the headline dashboard figures.
type Summary struct {
	Total            int
	Bookings         int     // Booking + Retail
	ConversionRate   float64 // percent, one decimal
	PendingFollowUps int
	ByStage          []StageCount // pipeline order, zero counts included
}

// Summarize computes the dashboard figures at now.
func Summarize(customers []*entity.Customer, thresholdDays int, now time.Time) Summary {
	counts := make(map[entity.Stage]int, len(entity.Stages))
	s := Summary{Total: len(customers)}
	for _, c := range customers {
		counts[c.Stage]++
		if c.Stage == entity.StageBooking || c.Stage == entity.StageRetail {
			s.Bookings++
		}
		if IsPendingFollowUp(c, thresholdDays, now) {
			s.PendingFollowUps++
		}
	}
	if s.Total > 0 {
		s.ConversionRate = math.Round(float64(s.Bookings)/float64(s.Total)*1000) / 10
	}
	s.ByStage = make([]StageCount, 0, len(entity.Stages))
	for _, st := range entity.Stages {
		s.ByStage = append(s.ByStage, StageCount{Stage: st, Count: counts[st]})
	}
	return s
}

// FollowUpsOn keeps customers whose next follow-up falls on day's calendar date.
func FollowUpsOn(customers []*entity.Customer, day time.Time) []*entity.Customer {
	return filter(customers, func(c *entity.Customer) bool {
		return c.NextFollowUpDate != nil && SameDay(*c.NextFollowUpDate, day)
	})
}

// ContactedOn keeps customers last contacted on day's calendar date.
func ContactedOn(customers []*entity.Customer, day time.Time) []*entity.Customer {
	return filter(customers, func(c *entity.Customer) bool { return SameDay(c.LastContacted, day) })
}

// StageChangedOn keeps customers whose stage last changed on day's calendar date.
func StageChangedOn(customers []*entity.Customer, day time.Time) []*entity.Customer {
	return filter(customers, func(c *entity.Customer) bool { return SameDay(c.StageChangedAt, day) })
}
