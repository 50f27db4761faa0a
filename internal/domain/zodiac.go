package domain

import "time"

// SignCode код знака зодиака
type SignCode string

const (
	SignAries       SignCode = "aries"
	SignTaurus      SignCode = "taurus"
	SignGemini      SignCode = "gemini"
	SignCancer      SignCode = "cancer"
	SignLeo         SignCode = "leo"
	SignVirgo       SignCode = "virgo"
	SignLibra       SignCode = "libra"
	SignScorpio     SignCode = "scorpio"
	SignSagittarius SignCode = "sagittarius"
	SignCapricorn   SignCode = "capricorn"
	SignAquarius    SignCode = "aquarius"
	SignPisces      SignCode = "pisces"
)

// DefaultSign знак-заглушка для пользователей без даты рождения
const DefaultSign = SignAries

// AllSigns возвращает все знаки в порядке зодиакального круга
func AllSigns() []SignCode {
	return []SignCode{
		SignAries, SignTaurus, SignGemini, SignCancer,
		SignLeo, SignVirgo, SignLibra, SignScorpio,
		SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
	}
}

func (s SignCode) String() string {
	return string(s)
}

func (s SignCode) IsValid() bool {
	switch s {
	case SignAries, SignTaurus, SignGemini, SignCancer,
		SignLeo, SignVirgo, SignLibra, SignScorpio,
		SignSagittarius, SignCapricorn, SignAquarius, SignPisces:
		return true
	default:
		return false
	}
}

// signStart первый день знака (месяц, день); знак действует до начала следующего
type signStart struct {
	month time.Month
	day   int
	sign  SignCode
}

// отсортировано по дате начала внутри календарного года
var signStarts = []signStart{
	{time.January, 20, SignAquarius},
	{time.February, 19, SignPisces},
	{time.March, 21, SignAries},
	{time.April, 20, SignTaurus},
	{time.May, 21, SignGemini},
	{time.June, 21, SignCancer},
	{time.July, 23, SignLeo},
	{time.August, 23, SignVirgo},
	{time.September, 23, SignLibra},
	{time.October, 23, SignScorpio},
	{time.November, 22, SignSagittarius},
	{time.December, 22, SignCapricorn},
}

// SignForDate определяет знак зодиака по дате рождения
func SignForDate(date time.Time) SignCode {
	month, day := date.Month(), date.Day()

	sign := SignCapricorn // 1-19 января
	for _, s := range signStarts {
		if month > s.month || (month == s.month && day >= s.day) {
			sign = s.sign
		}
	}
	return sign
}
