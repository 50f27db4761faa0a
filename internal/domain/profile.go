package domain

import (
	"slices"
	"time"
)

// Gender пол пользователя (собирается на последнем шаге регистрации)
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Language код локали пользователя
type Language string

const (
	LanguageRU Language = "ru"
)

// DefaultLanguage единственная поддерживаемая локаль
const DefaultLanguage = LanguageRU

func (l Language) IsValid() bool {
	return l == LanguageRU
}

// SupportedLanguages возвращает все поддерживаемые локали
func SupportedLanguages() []Language {
	return []Language{LanguageRU}
}

// Profile профиль пользователя бота, ключ - Telegram user id (совпадает с id приватного чата)
type Profile struct {
	ID                int64             `json:"id" db:"id"`
	Username          *string           `json:"username,omitempty" db:"username"`
	DisplayName       *string           `json:"display_name,omitempty" db:"display_name"`
	BirthDate         *time.Time        `json:"birth_date,omitempty" db:"birth_date"`
	Gender            *Gender           `json:"gender,omitempty" db:"gender"`
	ZodiacSign        SignCode          `json:"zodiac_sign" db:"zodiac_sign"`
	LanguageCode      Language          `json:"language_code" db:"language_code"`
	ConversationState ConversationState `json:"conversation_state" db:"conversation_state"`
	ReferrerID        *int64            `json:"referrer_id,omitempty" db:"referrer_id"`
	ReferralIDs       []int64           `json:"referral_ids,omitempty" db:"-"`
	RegisteredAt      time.Time         `json:"registered_at" db:"registered_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// NewProfile создаёт профиль с дефолтными значениями (знак-заглушка, локаль, пустое состояние)
func NewProfile(id int64, now time.Time) *Profile {
	return &Profile{
		ID:                id,
		ZodiacSign:        DefaultSign,
		LanguageCode:      DefaultLanguage,
		ConversationState: StateNone,
		RegisteredAt:      now,
		UpdatedAt:         now,
	}
}

// Clone возвращает глубокую копию профиля
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Username = clonePtr(p.Username)
	c.DisplayName = clonePtr(p.DisplayName)
	c.BirthDate = clonePtr(p.BirthDate)
	c.Gender = clonePtr(p.Gender)
	c.ReferrerID = clonePtr(p.ReferrerID)
	c.ReferralIDs = slices.Clone(p.ReferralIDs)
	return &c
}

// HasReferral проверяет, приглашён ли пользователь referralID этим профилем
func (p *Profile) HasReferral(referralID int64) bool {
	return slices.Contains(p.ReferralIDs, referralID)
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ProfileField поле профиля, доступное для точечной записи
type ProfileField string

const (
	FieldUsername          ProfileField = "username"
	FieldDisplayName       ProfileField = "display_name"
	FieldBirthDate         ProfileField = "birth_date"
	FieldGender            ProfileField = "gender"
	FieldZodiacSign        ProfileField = "zodiac_sign"
	FieldLanguageCode      ProfileField = "language_code"
	FieldConversationState ProfileField = "conversation_state"
	FieldReferrerID        ProfileField = "referrer_id"
	FieldReferralIDs       ProfileField = "referral_ids"
)

// Apply записывает значение поля в профиль, проверяя тип и допустимость значения
func (p *Profile) Apply(field ProfileField, value any) error {
	switch field {
	case FieldUsername:
		v, ok := value.(string)
		if !ok {
			return invalidField(field, value)
		}
		p.Username = &v
	case FieldDisplayName:
		v, ok := value.(string)
		if !ok {
			return invalidField(field, value)
		}
		p.DisplayName = &v
	case FieldBirthDate:
		v, ok := value.(time.Time)
		if !ok {
			return invalidField(field, value)
		}
		p.BirthDate = &v
	case FieldGender:
		v, ok := value.(Gender)
		if !ok || !v.IsValid() {
			return invalidField(field, value)
		}
		p.Gender = &v
	case FieldZodiacSign:
		v, ok := value.(SignCode)
		if !ok || !v.IsValid() {
			return invalidField(field, value)
		}
		p.ZodiacSign = v
	case FieldLanguageCode:
		v, ok := value.(Language)
		if !ok || !v.IsValid() {
			return invalidField(field, value)
		}
		p.LanguageCode = v
	case FieldConversationState:
		v, ok := value.(ConversationState)
		if !ok || !v.IsValid() {
			return invalidField(field, value)
		}
		p.ConversationState = v
	case FieldReferrerID:
		v, ok := value.(int64)
		if !ok {
			return invalidField(field, value)
		}
		if v == p.ID {
			return ErrSelfReferral
		}
		p.ReferrerID = &v
	case FieldReferralIDs:
		v, ok := value.(int64)
		if !ok {
			return invalidField(field, value)
		}
		if v == p.ID {
			return ErrSelfReferral
		}
		if !p.HasReferral(v) {
			p.ReferralIDs = append(p.ReferralIDs, v)
		}
	default:
		return invalidField(field, value)
	}
	return nil
}
