package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/QuilGrafit/astroX/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed ruleset.yaml
var defaultRuleset []byte

// Ruleset неизменяемые справочные данные для гороскопов, загружаются один раз при старте
type Ruleset struct {
	Version                string           `yaml:"version"`
	DefaultSign            domain.SignCode  `yaml:"default_sign"`
	UndefinedCompatibility string           `yaml:"undefined_compatibility"`
	Moods                  []string         `yaml:"moods"`
	Colors                 []string         `yaml:"colors"`
	Tips                   []string         `yaml:"tips"`
	Aspects                []Aspect         `yaml:"aspects"`
	Signs                  []Sign           `yaml:"signs"`
	FortuneSlips           []string         `yaml:"fortune_slips"`
	Oracle                 []OracleCategory `yaml:"oracle"`

	signIndex   map[domain.SignCode]*Sign
	aspectIndex map[domain.AspectCode]*Aspect
}

// Sign метаданные знака зодиака
type Sign struct {
	Code         domain.SignCode   `yaml:"code"`
	Name         string            `yaml:"name"`
	Emoji        string            `yaml:"emoji"`
	Element      string            `yaml:"element"`
	Planet       string            `yaml:"planet"`
	LuckyNumbers []int             `yaml:"lucky_numbers"`
	Stone        string            `yaml:"stone"`
	Compatible   []domain.SignCode `yaml:"compatible"`
}

// Aspect сфера жизни и тексты по диапазонам оценки
type Aspect struct {
	Code  domain.AspectCode `yaml:"code"`
	Title string            `yaml:"title"`
	Emoji string            `yaml:"emoji"`
	Bands []Band            `yaml:"bands"`
}

// Band диапазон оценки [Min, Max] и пул текстов для него
type Band struct {
	Min   int      `yaml:"min"`
	Max   int      `yaml:"max"`
	Lines []string `yaml:"lines"`
}

// OracleCategory категория ответа оракула с весом в процентах
type OracleCategory struct {
	Code   string   `yaml:"code"`
	Weight int      `yaml:"weight"`
	Lines  []string `yaml:"lines"`
}

// Default возвращает встроенный набор
func Default() (*Ruleset, error) {
	return Parse(defaultRuleset)
}

// Parse разбирает YAML, строит индексы и проверяет набор
func Parse(data []byte) (*Ruleset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Ruleset
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset %q: %w", r.Version, err)
	}
	return &r, nil
}

// Validate проверяет полноту набора и строит индексы
func (r *Ruleset) Validate() error {
	var errs []error

	if len(r.Moods) == 0 {
		errs = append(errs, errors.New("moods are empty"))
	}
	if len(r.Colors) == 0 {
		errs = append(errs, errors.New("colors are empty"))
	}
	if len(r.Tips) == 0 {
		errs = append(errs, errors.New("tips are empty"))
	}
	if len(r.FortuneSlips) == 0 {
		errs = append(errs, errors.New("fortune slips are empty"))
	}
	if r.UndefinedCompatibility == "" {
		errs = append(errs, errors.New("undefined compatibility placeholder is empty"))
	}
	if !r.DefaultSign.IsValid() {
		errs = append(errs, fmt.Errorf("default sign %q is unknown", r.DefaultSign))
	}

	r.signIndex = make(map[domain.SignCode]*Sign, len(r.Signs))
	for i := range r.Signs {
		s := &r.Signs[i]
		if !s.Code.IsValid() {
			errs = append(errs, fmt.Errorf("sign %q is unknown", s.Code))
			continue
		}
		if _, dup := r.signIndex[s.Code]; dup {
			errs = append(errs, fmt.Errorf("sign %q is duplicated", s.Code))
			continue
		}
		r.signIndex[s.Code] = s

		if s.Name == "" || s.Planet == "" || s.Stone == "" {
			errs = append(errs, fmt.Errorf("sign %q: name, planet and stone are required", s.Code))
		}
		if len(s.LuckyNumbers) == 0 {
			errs = append(errs, fmt.Errorf("sign %q has no lucky numbers", s.Code))
		}
		for _, c := range s.Compatible {
			if !c.IsValid() || c == s.Code {
				errs = append(errs, fmt.Errorf("sign %q: bad compatible sign %q", s.Code, c))
			}
		}
	}
	for _, code := range domain.AllSigns() {
		if _, ok := r.signIndex[code]; !ok {
			errs = append(errs, fmt.Errorf("sign %q is missing", code))
		}
	}

	// порядок сфер фиксирован, от него зависит порядок выборок генератора
	r.aspectIndex = make(map[domain.AspectCode]*Aspect, len(r.Aspects))
	expected := domain.AllAspects()
	if len(r.Aspects) != len(expected) {
		errs = append(errs, fmt.Errorf("expected %d aspects, got %d", len(expected), len(r.Aspects)))
	}
	for i := range r.Aspects {
		a := &r.Aspects[i]
		if i < len(expected) && a.Code != expected[i] {
			errs = append(errs, fmt.Errorf("aspect #%d: expected %q, got %q", i, expected[i], a.Code))
		}
		r.aspectIndex[a.Code] = a
		errs = append(errs, validateBands(a)...)
	}

	total := 0
	for _, c := range r.Oracle {
		if c.Weight <= 0 || len(c.Lines) == 0 {
			errs = append(errs, fmt.Errorf("oracle category %q: weight and lines are required", c.Code))
		}
		total += c.Weight
	}
	if total != 100 {
		errs = append(errs, fmt.Errorf("oracle weights sum to %d, expected 100", total))
	}

	return errors.Join(errs...)
}

func validateBands(a *Aspect) []error {
	var errs []error
	var covered [11]bool
	for _, b := range a.Bands {
		if b.Min < 1 || b.Max > 10 || b.Min > b.Max {
			errs = append(errs, fmt.Errorf("aspect %q: bad band [%d,%d]", a.Code, b.Min, b.Max))
			continue
		}
		if len(b.Lines) == 0 {
			errs = append(errs, fmt.Errorf("aspect %q: band [%d,%d] has no lines", a.Code, b.Min, b.Max))
		}
		for s := b.Min; s <= b.Max; s++ {
			if covered[s] {
				errs = append(errs, fmt.Errorf("aspect %q: bands overlap at %d", a.Code, s))
				break
			}
			covered[s] = true
		}
	}
	return errs
}

// Sign возвращает метаданные знака
func (r *Ruleset) Sign(code domain.SignCode) (*Sign, bool) {
	s, ok := r.signIndex[code]
	return s, ok
}

// Aspect возвращает сферу по коду
func (r *Ruleset) Aspect(code domain.AspectCode) (*Aspect, bool) {
	a, ok := r.aspectIndex[code]
	return a, ok
}

// Band возвращает пул текстов для оценки; false, если диапазон не задан
func (a *Aspect) Band(score int) ([]string, bool) {
	for _, b := range a.Bands {
		if score >= b.Min && score <= b.Max {
			return b.Lines, true
		}
	}
	return nil, false
}
