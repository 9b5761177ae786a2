package projection

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// SortKey names a sortable customer field.
type SortKey string

// Sortable fields.
const (
	SortName            SortKey = "name"
	SortPhone           SortKey = "phone"
	SortLocation        SortKey = "location"
	SortBusinessType    SortKey = "businessType"
	SortDailyProduction SortKey = "dailyProduction"
	SortStage           SortKey = "stage"
	SortLastContacted   SortKey = "lastContacted"
	SortCreatedAt       SortKey = "createdAt"
	SortStageChangedAt  SortKey = "stageChangedAt"
)

// Direction is the sort order.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc/desc and their long forms; empty means ascending.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: unknown sort direction %q", domain.ErrValidation, raw)
}

func compareTime(a, b time.Time) int { return a.Compare(b) }

var comparators = map[SortKey]func(a, b *entity.Customer) int{
	SortName:     func(a, b *entity.Customer) int { return strings.Compare(a.Name, b.Name) },
	SortPhone:    func(a, b *entity.Customer) int { return strings.Compare(a.Phone, b.Phone) },
	SortLocation: func(a, b *entity.Customer) int { return strings.Compare(a.Location, b.Location) },
	SortBusinessType: func(a, b *entity.Customer) int {
		return strings.Compare(string(a.BusinessType), string(b.BusinessType))
	},
	SortDailyProduction: func(a, b *entity.Customer) int { return cmp.Compare(a.DailyProduction, b.DailyProduction) },
	SortStage:           func(a, b *entity.Customer) int { return cmp.Compare(a.Stage.Order(), b.Stage.Order()) },
	SortLastContacted:   func(a, b *entity.Customer) int { return compareTime(a.LastContacted, b.LastContacted) },
	SortCreatedAt:       func(a, b *entity.Customer) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	SortStageChangedAt:  func(a, b *entity.Customer) int { return compareTime(a.StageChangedAt, b.StageChangedAt) },
}

// SortBy returns a copy ordered by key. The sort is stable in both directions, so records
// that compare equal keep their relative input order.
func SortBy(customers []*entity.Customer, key SortKey, dir Direction) ([]*entity.Customer, error) {
	compare, ok := comparators[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort key %q", domain.ErrValidation, key)
	}
	out := append([]*entity.Customer(nil), customers...)
	sort.SliceStable(out, func(i, j int) bool {
		r := compare(out[i], out[j])
		if dir == Descending {
			return r > 0
		}
		return r < 0
	})
	return out, nil
}
