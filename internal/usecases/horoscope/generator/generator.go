package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
	"github.com/cespare/xxhash/v2"
)

const (
	minScore      = 1
	maxScore      = 10
	maxCompatible = 2
)

var (
	ErrBirthDateMissing = errors.New("birth date is missing")
	ErrBirthDateAfter   = errors.New("birth date is after the reading date")
)

// Generator строит дневной гороскоп. Результат зависит только от (id, дата, знак) и набора текстов.
type Generator struct {
	rules *content.Ruleset
	log   *slog.Logger
}

func New(rules *content.Ruleset, log *slog.Logger) *Generator {
	return &Generator{
		rules: rules,
		log:   log,
	}
}

// Seed детерминированный seed из строки "<id><YYYYMMDD><sign>"
func Seed(userID int64, date time.Time, sign domain.SignCode) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%d%s%s", userID, date.Format("20060102"), sign))
}

// Generate строит гороскоп на календарный день asOf.
// Порядок выборок фиксирован: оценки, настроение, цвет, число, совместимость, тексты сфер, совет.
func (g *Generator) Generate(userID int64, profile *domain.Profile, asOf time.Time) domain.DailyReading {
	date := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())

	signCode := g.rules.DefaultSign
	if profile != nil && profile.ZodiacSign.IsValid() {
		signCode = profile.ZodiacSign
	}
	sign, ok := g.rules.Sign(signCode)
	if !ok {
		// Validate гарантирует все 12 знаков
		panic(fmt.Sprintf("sign %q missing from ruleset %q", signCode, g.rules.Version))
	}

	seed := Seed(userID, date, signCode)
	rng := rand.New(rand.NewPCG(seed, seed))

	aspects := domain.AllAspects()
	reading := domain.DailyReading{
		UserID:  userID,
		Date:    date,
		Sign:    signCode,
		Aspects: make([]domain.AspectReading, len(aspects)),
	}

	for i, code := range aspects {
		reading.Aspects[i] = domain.AspectReading{
			Aspect: code,
			Score:  minScore + rng.IntN(maxScore-minScore+1),
		}
	}

	reading.Mood = pick(rng, g.rules.Moods)
	reading.Color = pick(rng, g.rules.Colors)
	reading.LuckyNumber = pick(rng, sign.LuckyNumbers)
	reading.Planet = sign.Planet
	reading.Stone = sign.Stone

	reading.Compatible = SampleCompatible(rng, sign.Compatible, maxCompatible)
	reading.CompatibilityUndefined = len(reading.Compatible) == 0

	for i := range reading.Aspects {
		a := &reading.Aspects[i]
		aspect, ok := g.rules.Aspect(a.Aspect)
		if !ok {
			continue
		}
		// для диапазона без текстов выборки нет
		if lines, ok := aspect.Band(a.Score); ok && len(lines) > 0 {
			a.Line = pick(rng, lines)
		}
	}

	reading.Tip = pick(rng, g.rules.Tips)

	if profile != nil && profile.BirthDate != nil {
		age, err := AgeAt(*profile.BirthDate, date)
		if err != nil {
			g.log.Warn("malformed birth date, age omitted", "user_id", userID, "error", err)
		} else {
			reading.Age = &age
		}
	}

	return reading
}

// SampleCompatible выбирает до n различных знаков без повторов (частичный Fisher-Yates)
func SampleCompatible(rng *rand.Rand, candidates []domain.SignCode, n int) []domain.SignCode {
	pool := slices.Clone(candidates)
	n = min(n, len(pool))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// AgeAt полных лет на дату asOf
func AgeAt(birth, asOf time.Time) (int, error) {
	if birth.IsZero() {
		return 0, ErrBirthDateMissing
	}

	by, bm, bd := birth.Date()
	ay, am, ad := asOf.Date()
	if by > ay || (by == ay && (bm > am || (bm == am && bd > ad))) {
		return 0, fmt.Errorf("%w: %s > %s", ErrBirthDateAfter, birth.Format("02.01.2006"), asOf.Format("02.01.2006"))
	}

	age := ay - by
	if am < bm || (am == bm && ad < bd) {
		age--
	}
	return age, nil
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
