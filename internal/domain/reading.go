package domain

import "time"

// AspectCode сфера жизни, оцениваемая в гороскопе
type AspectCode string

const (
	AspectLove    AspectCode = "love"
	AspectCareer  AspectCode = "career"
	AspectFinance AspectCode = "finance"
	AspectHealth  AspectCode = "health"
)

// AllAspects порядок сфер фиксирован: он определяет порядок выборок генератора
func AllAspects() []AspectCode {
	return []AspectCode{AspectLove, AspectCareer, AspectFinance, AspectHealth}
}

// AspectReading оценка одной сферы и текст по диапазону оценки (пустой, если диапазона нет)
type AspectReading struct {
	Aspect AspectCode
	Score  int
	Line   string
}

// DailyReading гороскоп пользователя на один день, не хранится
type DailyReading struct {
	UserID                 int64
	Date                   time.Time
	Sign                   SignCode
	Aspects                []AspectReading
	Mood                   string
	Color                  string
	LuckyNumber            int
	Planet                 string
	Stone                  string
	Compatible             []SignCode
	CompatibilityUndefined bool
	Tip                    string
	Age                    *int
}

// BroadcastResult итог рассылки
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
