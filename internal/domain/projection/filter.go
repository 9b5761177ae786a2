// Package projection derives read-only views of the customer list. Functions never modify
// their inputs and always return fresh slices.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// DefaultFollowUpDays is the idle period after which a customer needs a follow-up.
const DefaultFollowUpDays = 7

const day = 24 * time.Hour

func filter(customers []*entity.Customer, keep func(*entity.Customer) bool) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(customers))
	for _, c := range customers {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByStages keeps customers whose stage is one of stages. No stages means no filter.
func FilterByStages(customers []*entity.Customer, stages ...entity.Stage) []*entity.Customer {
	if len(stages) == 0 {
		return append([]*entity.Customer(nil), customers...)
	}
	set := make(map[entity.Stage]struct{}, len(stages))
	for _, s := range stages {
		set[s] = struct{}{}
	}
	return filter(customers, func(c *entity.Customer) bool {
		_, ok := set[c.Stage]
		return ok
	})
}

// IsPendingFollowUp reports whether more than thresholdDays full days have elapsed since the
// last contact. Exactly thresholdDays is not pending; one second more is.
func IsPendingFollowUp(c *entity.Customer, thresholdDays int, now time.Time) bool {
	return now.Sub(c.LastContacted) > time.Duration(thresholdDays)*day
}

// FilterPendingFollowUp keeps customers idle for longer than thresholdDays.
func FilterPendingFollowUp(customers []*entity.Customer, thresholdDays int, now time.Time) []*entity.Customer {
	return filter(customers, func(c *entity.Customer) bool {
		return IsPendingFollowUp(c, thresholdDays, now)
	})
}

// Bucket is a creation-date window relative to now.
type Bucket string

// Creation buckets.
const (
	BucketAll       Bucket = "all"
	BucketToday     Bucket = "today"
	BucketYesterday Bucket = "yesterday"
	BucketWeek      Bucket = "week"
	BucketMonth     Bucket = "month"
)

// ParseBucket validates a bucket name; empty means all.
func ParseBucket(raw string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(raw)))
	switch b {
	case "":
		return BucketAll, nil
	case BucketAll, BucketToday, BucketYesterday, BucketWeek, BucketMonth:
		return b, nil
	}
	return "", fmt.Errorf("%w: unknown date bucket %q", domain.ErrValidation, raw)
}

// StartOfDay is local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FilterByCreatedBucket keeps customers created inside the bucket window. Day boundaries are
// midnights in now's location; weeks start on Sunday.
func FilterByCreatedBucket(customers []*entity.Customer, bucket Bucket, now time.Time) []*entity.Customer {
	today := StartOfDay(now)
	var from, to time.Time
	switch bucket {
	case BucketToday:
		from = today
	case BucketYesterday:
		from, to = today.AddDate(0, 0, -1), today
	case BucketWeek:
		from = today.AddDate(0, 0, -int(today.Weekday()))
	case BucketMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return append([]*entity.Customer(nil), customers...)
	}
	return filter(customers, func(c *entity.Customer) bool {
		if c.CreatedAt.Before(from) {
			return false
		}
		return to.IsZero() || c.CreatedAt.Before(to)
	})
}
