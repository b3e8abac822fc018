// Package query 實作活動列表的篩選與排序，以及儀表板統計。
// 所有函式皆為純函式：相同輸入永遠得到相同輸出，且不修改輸入。
package query

import (
	"cmp"
	"slices"
	"strings"

	"go-event-hub/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByPrice        SortKey = "price"
	SortByPopularity   SortKey = "popularity"
	SortByAlphabetical SortKey = "alphabetical"
)

type PriceRange string

const (
	PriceAny     PriceRange = ""
	PriceFree    PriceRange = "free"
	PriceUpTo50  PriceRange = "1-50"
	PriceUpTo100 PriceRange = "51-100"
	PriceOver100 PriceRange = "100+"
)

// Params 查詢條件，零值欄位代表不篩選
type Params struct {
	Term     string
	Category string
	Sort     SortKey

	OrganizerID  string
	Status       model.EventStatus
	PriceRange   PriceRange
	Availability model.Availability
}

// Apply 先篩選再以穩定排序輸出新的 slice
func Apply(events []*model.Event, p Params) []*model.Event {
	term := strings.ToLower(p.Term)

	out := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if matchesTerm(e, term) && matchesCategory(e, p.Category) && matchesAdvanced(e, p) {
			out = append(out, e)
		}
	}

	sortStable(out, p.Sort)
	return out
}

func matchesTerm(e *model.Event, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.Location), term)
}

func matchesCategory(e *model.Event, category string) bool {
	return category == "" || category == model.CategoryAll || e.Category == category
}

func matchesAdvanced(e *model.Event, p Params) bool {
	if p.OrganizerID != "" && e.OrganizerID != p.OrganizerID {
		return false
	}
	if p.Status != "" && e.Status != p.Status {
		return false
	}
	if p.Availability != "" && e.Availability() != p.Availability {
		return false
	}
	return matchesPrice(e.Price, p.PriceRange)
}

func matchesPrice(price float64, r PriceRange) bool {
	switch r {
	case PriceFree:
		return price == 0
	case PriceUpTo50:
		// 非整數價格也要落在某個區間
		return price > 0 && price <= 50
	case PriceUpTo100:
		return price > 50 && price <= 100
	case PriceOver100:
		return price > 100
	default:
		return true
	}
}

func sortStable(events []*model.Event, key SortKey) {
	switch key {
	case SortByDate:
		slices.SortStableFunc(events, compareDate)
	case SortByPrice:
		slices.SortStableFunc(events, func(a, b *model.Event) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortByPopularity:
		slices.SortStableFunc(events, func(a, b *model.Event) int {
			return b.Registered - a.Registered
		})
	case SortByAlphabetical:
		// Collator 不可並行使用，每次查詢各自建立
		c := collate.New(language.English)
		slices.SortStableFunc(events, func(a, b *model.Event) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}

// compareDate 日期由早到晚，無法解析的日期排在最後
func compareDate(a, b *model.Event) int {
	da, okA := a.ParsedDate()
	db, okB := b.ParsedDate()
	switch {
	case okA && okB:
		return da.Compare(db)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
