package model

import "time"

// EventStatus 活動狀態，建立時決定，不會自動轉換
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
)

// IsValid 驗證狀態是否有效
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted:
		return true
	}
	return false
}

// CategoryAll 查詢時代表不限分類
const CategoryAll = "all"

var Categories = []string{
	"Conference",
	"Workshop",
	"Seminar",
	"Networking",
	"Exhibition",
	"Concert",
	"Festival",
	"Sports",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// DateLayout 活動日期格式（日曆日期，不含時區）
const DateLayout = "2006-01-02"

// AlmostFullPercentage 報名率超過此值視為即將額滿
const AlmostFullPercentage = 80.0

type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityAlmostFull Availability = "almost_full"
	AvailabilityFull       Availability = "full"
)

type Event struct {
	ID            string      `json:"id" db:"event_id"`
	Title         string      `json:"title" db:"title"`
	Description   string      `json:"description" db:"description"`
	Date          string      `json:"date" db:"date"`
	Time          string      `json:"time" db:"time"`
	Location      string      `json:"location" db:"location"`
	Capacity      int         `json:"capacity" db:"capacity"`
	Registered    int         `json:"registered" db:"registered"`
	Price         float64     `json:"price" db:"price"`
	Category      string      `json:"category" db:"category"`
	Image         string      `json:"image" db:"image"`
	OrganizerID   string      `json:"organizerId" db:"organizer_id"`
	OrganizerName string      `json:"organizerName" db:"organizer_name"`
	Status        EventStatus `json:"status" db:"status"`
}

// EventFields 建立與編輯時可由呼叫端設定的欄位
// id、registered、organizer 相關欄位不在此列
type EventFields struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    int
	Price       float64
	Category    string
	Image       string
	Status      EventStatus
}

// Apply 以 fields 取代活動的可編輯欄位
func (e *Event) Apply(fields EventFields) {
	e.Title = fields.Title
	e.Description = fields.Description
	e.Date = fields.Date
	e.Time = fields.Time
	e.Location = fields.Location
	e.Capacity = fields.Capacity
	e.Price = fields.Price
	e.Category = fields.Category
	e.Image = fields.Image
	e.Status = fields.Status
}

// ParsedDate 解析活動日期，格式錯誤時 ok 為 false
func (e *Event) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsFullyBooked 檢查是否已額滿
func (e *Event) IsFullyBooked() bool {
	return e.Registered >= e.Capacity
}

// RegistrationPercentage 報名百分比，capacity 為 0 時回傳 0
func (e *Event) RegistrationPercentage() float64 {
	if e.Capacity <= 0 {
		return 0
	}
	return float64(e.Registered) / float64(e.Capacity) * 100
}

func (e *Event) Availability() Availability {
	switch {
	case e.IsFullyBooked():
		return AvailabilityFull
	case e.RegistrationPercentage() > AlmostFullPercentage:
		return AvailabilityAlmostFull
	default:
		return AvailabilityAvailable
	}
}

func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// DashboardStats 主辦方儀表板統計，每次由 catalog 即時計算
type DashboardStats struct {
	TotalEvents        int     `json:"totalEvents"`
	TotalRegistrations int     `json:"totalRegistrations"`
	Revenue            float64 `json:"revenue"`
	AvgRegistrations   int     `json:"avgRegistrations"`
}
