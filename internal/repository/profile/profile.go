package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/persistence"
	ports "github.com/QuilGrafit/astroX/internal/ports/repository"
)

type profileColumns struct {
	TableName         string
	ID                string
	Username          string
	DisplayName       string
	BirthDate         string
	Gender            string
	ZodiacSign        string
	LanguageCode      string
	ConversationState string
	ReferrerID        string
	RegisteredAt      string
	UpdatedAt         string
}

type referralColumns struct {
	TableName  string
	ProfileID  string
	ReferralID string
	CreatedAt  string
}

// profileRow строка таблицы profiles
type profileRow struct {
	ID                int64          `db:"id"`
	Username          sql.NullString `db:"username"`
	DisplayName       sql.NullString `db:"display_name"`
	BirthDate         sql.NullTime   `db:"birth_date"`
	Gender            sql.NullString `db:"gender"`
	ZodiacSign        string         `db:"zodiac_sign"`
	LanguageCode      string         `db:"language_code"`
	ConversationState string         `db:"conversation_state"`
	ReferrerID        sql.NullInt64  `db:"referrer_id"`
	RegisteredAt      time.Time      `db:"registered_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

type referralRow struct {
	ProfileID  int64 `db:"profile_id"`
	ReferralID int64 `db:"referral_id"`
}

type Repository struct {
	db        persistence.Persistence
	Log       *slog.Logger
	columns   profileColumns
	referrals referralColumns
	now       func() time.Time
}

// New создаёт репозиторий профилей поверх Postgres
func New(db persistence.Persistence, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		Log: log,
		columns: profileColumns{
			TableName:         "profiles",
			ID:                "id",
			Username:          "username",
			DisplayName:       "display_name",
			BirthDate:         "birth_date",
			Gender:            "gender",
			ZodiacSign:        "zodiac_sign",
			LanguageCode:      "language_code",
			ConversationState: "conversation_state",
			ReferrerID:        "referrer_id",
			RegisteredAt:      "registered_at",
			UpdatedAt:         "updated_at",
		},
		referrals: referralColumns{
			TableName:  "profile_referrals",
			ProfileID:  "profile_id",
			ReferralID: "referral_id",
			CreatedAt:  "created_at",
		},
		now: time.Now,
	}
}

var _ ports.IProfileStore = (*Repository)(nil)

// allColumns возвращает строку со всеми колонками profiles (11 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Username,
		r.columns.DisplayName,
		r.columns.BirthDate,
		r.columns.Gender,
		r.columns.ZodiacSign,
		r.columns.LanguageCode,
		r.columns.ConversationState,
		r.columns.ReferrerID,
		r.columns.RegisteredAt,
		r.columns.UpdatedAt)
}

// Get получает профиль по Telegram ID
func (r *Repository) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	var row profileRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	if err := r.db.Get(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("profile not found", "user_id", id)
			return nil, fmt.Errorf("%w: %d", domain.ErrProfileNotFound, id)
		}
		r.Log.Error("failed to get profile", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var referralIDs []int64
	query = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		r.referrals.ReferralID,
		r.referrals.TableName,
		r.referrals.ProfileID,
		r.referrals.CreatedAt)
	if err := r.db.Select(ctx, &referralIDs, query, id); err != nil {
		r.Log.Error("failed to get profile referrals", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get profile referrals: %w", err)
	}

	profile := row.toDomain()
	profile.ReferralIDs = referralIDs
	return profile, nil
}

// Create вставляет профиль; существующая запись не перезаписывается
func (r *Repository) Create(ctx context.Context, profile *domain.Profile) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (%s) DO NOTHING`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.ID)

	row := fromDomain(profile)
	var created bool
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		affected, err := tx.ExecWithResult(ctx, query,
			row.ID,
			row.Username,
			row.DisplayName,
			row.BirthDate,
			row.Gender,
			row.ZodiacSign,
			row.LanguageCode,
			row.ConversationState,
			row.ReferrerID,
			row.RegisteredAt,
			row.UpdatedAt)
		if err != nil {
			return err
		}
		created = affected > 0
		if !created {
			return nil
		}
		for _, referralID := range profile.ReferralIDs {
			if err := r.insertReferral(ctx, tx, profile.ID, referralID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.Log.Error("failed to create profile", "error", err, "user_id", profile.ID)
		return false, fmt.Errorf("failed to create profile: %w", err)
	}

	r.Log.Debug("profile create", "user_id", profile.ID, "created", created)
	return created, nil
}

// SetField записывает одно поле; если профиля нет, создаёт его со значениями по умолчанию
func (r *Repository) SetField(ctx context.Context, id int64, field domain.ProfileField, value any) error {
	if field == domain.FieldReferralIDs {
		return fmt.Errorf("%w: %s is a set, use AddToSet", domain.ErrInvalidField, field)
	}

	now := r.now()
	// значение проверяется доменом, в колонку пишется уже приведённое
	scratch := domain.NewProfile(id, now)
	if err := scratch.Apply(field, value); err != nil {
		return err
	}
	column, arg := r.columnValue(fromDomain(scratch), field)

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		r.columns.TableName,
		r.columns.ID, column, r.columns.RegisteredAt, r.columns.UpdatedAt,
		r.columns.ID,
		column, column,
		r.columns.UpdatedAt, r.columns.UpdatedAt)

	if err := r.db.Exec(ctx, query, id, arg, now); err != nil {
		r.Log.Error("failed to set profile field",
			"error", err,
			"user_id", id,
			"field", field)
		return fmt.Errorf("failed to set profile field %s: %w", field, err)
	}

	r.Log.Debug("profile field updated", "user_id", id, "field", field)
	return nil
}

// AddToSet добавляет реферала; повторное добавление ничего не меняет
func (r *Repository) AddToSet(ctx context.Context, id int64, field domain.ProfileField, value any) error {
	if field != domain.FieldReferralIDs {
		return fmt.Errorf("%w: %s is not a set", domain.ErrInvalidField, field)
	}

	now := r.now()
	scratch := domain.NewProfile(id, now)
	if err := scratch.Apply(field, value); err != nil {
		return err
	}
	referralID := scratch.ReferralIDs[0]

	ensureQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $2) ON CONFLICT (%s) DO NOTHING`,
		r.columns.TableName,
		r.columns.ID, r.columns.RegisteredAt, r.columns.UpdatedAt,
		r.columns.ID)

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := tx.Exec(ctx, ensureQuery, id, now); err != nil {
			return err
		}
		return r.insertReferral(ctx, tx, id, referralID)
	})
	if err != nil {
		r.Log.Error("failed to add referral",
			"error", err,
			"user_id", id,
			"referral_id", referralID)
		return fmt.Errorf("failed to add referral: %w", err)
	}

	r.Log.Debug("referral added", "user_id", id, "referral_id", referralID)
	return nil
}

func (r *Repository) insertReferral(ctx context.Context, tx persistence.Transaction, profileID, referralID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s, %s) DO NOTHING`,
		r.referrals.TableName,
		r.referrals.ProfileID, r.referrals.ReferralID,
		r.referrals.ProfileID, r.referrals.ReferralID)
	return tx.Exec(ctx, query, profileID, referralID)
}

// ListAll возвращает все профили (для рассылки)
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	var rows []profileRow
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	if err := r.db.Select(ctx, &rows, query); err != nil {
		r.Log.Error("failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var referrals []referralRow
	query = fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`,
		r.referrals.ProfileID,
		r.referrals.ReferralID,
		r.referrals.TableName,
		r.referrals.CreatedAt)
	if err := r.db.Select(ctx, &referrals, query); err != nil {
		r.Log.Error("failed to list referrals", "error", err)
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}

	byProfile := make(map[int64][]int64, len(rows))
	for _, ref := range referrals {
		byProfile[ref.ProfileID] = append(byProfile[ref.ProfileID], ref.ReferralID)
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for _, row := range rows {
		p := row.toDomain()
		p.ReferralIDs = byProfile[p.ID]
		profiles = append(profiles, p)
	}

	r.Log.Debug("profiles listed", "count", len(profiles))
	return profiles, nil
}

// columnValue возвращает колонку и значение для записи поля
func (r *Repository) columnValue(row profileRow, field domain.ProfileField) (string, any) {
	switch field {
	case domain.FieldUsername:
		return r.columns.Username, row.Username
	case domain.FieldDisplayName:
		return r.columns.DisplayName, row.DisplayName
	case domain.FieldBirthDate:
		return r.columns.BirthDate, row.BirthDate
	case domain.FieldGender:
		return r.columns.Gender, row.Gender
	case domain.FieldZodiacSign:
		return r.columns.ZodiacSign, row.ZodiacSign
	case domain.FieldLanguageCode:
		return r.columns.LanguageCode, row.LanguageCode
	case domain.FieldConversationState:
		return r.columns.ConversationState, row.ConversationState
	case domain.FieldReferrerID:
		return r.columns.ReferrerID, row.ReferrerID
	default:
		// недостижимо: Apply уже отверг неизвестное поле
		panic(fmt.Sprintf("no column for profile field %q", field))
	}
}

func fromDomain(p *domain.Profile) profileRow {
	row := profileRow{
		ID:                p.ID,
		ZodiacSign:        string(p.ZodiacSign),
		LanguageCode:      string(p.LanguageCode),
		ConversationState: string(p.ConversationState),
		RegisteredAt:      p.RegisteredAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Username != nil {
		row.Username = sql.NullString{String: *p.Username, Valid: true}
	}
	if p.DisplayName != nil {
		row.DisplayName = sql.NullString{String: *p.DisplayName, Valid: true}
	}
	if p.BirthDate != nil {
		row.BirthDate = sql.NullTime{Time: *p.BirthDate, Valid: true}
	}
	if p.Gender != nil {
		row.Gender = sql.NullString{String: string(*p.Gender), Valid: true}
	}
	if p.ReferrerID != nil {
		row.ReferrerID = sql.NullInt64{Int64: *p.ReferrerID, Valid: true}
	}
	return row
}

func (row profileRow) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:                row.ID,
		ZodiacSign:        domain.SignCode(row.ZodiacSign),
		LanguageCode:      domain.Language(row.LanguageCode),
		ConversationState: domain.ConversationState(row.ConversationState),
		RegisteredAt:      row.RegisteredAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.Username.Valid {
		p.Username = &row.Username.String
	}
	if row.DisplayName.Valid {
		p.DisplayName = &row.DisplayName.String
	}
	if row.BirthDate.Valid {
		// DATE приходит как полночь UTC; дата рождения - календарная дата
		bd := time.Date(row.BirthDate.Time.Year(), row.BirthDate.Time.Month(), row.BirthDate.Time.Day(), 0, 0, 0, 0, time.UTC)
		p.BirthDate = &bd
	}
	if row.Gender.Valid {
		g := domain.Gender(row.Gender.String)
		p.Gender = &g
	}
	if row.ReferrerID.Valid {
		p.ReferrerID = &row.ReferrerID.Int64
	}
	if !p.ZodiacSign.IsValid() {
		p.ZodiacSign = domain.DefaultSign
	}
	if !p.ConversationState.IsValid() {
		p.ConversationState = domain.StateNone
	}
	if !p.LanguageCode.IsValid() {
		p.LanguageCode = domain.DefaultLanguage
	}
	return p
}
