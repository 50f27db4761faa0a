package profileRepo

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/pg"
	"github.com/QuilGrafit/astroX/internal/domain"
)

var fixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

var profileColumnNames = []string{
	"id", "username", "display_name", "birth_date", "gender", "zodiac_sign",
	"language_code", "conversation_state", "referrer_id", "registered_at", "updated_at",
}

func setupRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := pg.NewDB(sqlx.NewDb(mockDB, "sqlmock"))
	repo := New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := setupRepo(t)
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(profileColumnNames).
			AddRow(int64(42), "anna", "Анна", birth, "female", "gemini", "ru", "none", int64(7), fixedNow, fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT referral_id FROM profile_referrals WHERE profile_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"referral_id"}).AddRow(int64(100)).AddRow(int64(101)))

	profile, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)

	require.NotNil(t, profile.Username)
	assert.Equal(t, "anna", *profile.Username)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Анна", *profile.DisplayName)
	require.NotNil(t, profile.BirthDate)
	assert.True(t, birth.Equal(*profile.BirthDate))
	require.NotNil(t, profile.Gender)
	assert.Equal(t, domain.GenderFemale, *profile.Gender)
	assert.Equal(t, domain.SignCode("gemini"), profile.ZodiacSign)
	require.NotNil(t, profile.ReferrerID)
	assert.Equal(t, int64(7), *profile.ReferrerID)
	assert.Equal(t, []int64{100, 101}, profile.ReferralIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNormalizesUnknownValues(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(profileColumnNames).
			AddRow(int64(5), nil, nil, nil, nil, "dragon", "xx", "dancing", nil, fixedNow, fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta("FROM profile_referrals")).
		WillReturnRows(sqlmock.NewRows([]string{"referral_id"}))

	profile, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)

	assert.Nil(t, profile.Username)
	assert.Nil(t, profile.BirthDate)
	assert.Nil(t, profile.ReferrerID)
	assert.Equal(t, domain.DefaultSign, profile.ZodiacSign)
	assert.Equal(t, domain.DefaultLanguage, profile.LanguageCode)
	assert.Equal(t, domain.StateNone, profile.ConversationState)
	assert.Empty(t, profile.ReferralIDs)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateInsertOnly(t *testing.T) {
	repo, mock := setupRepo(t)
	profile := domain.NewProfile(42, fixedNow)

	// первая вставка создаёт запись
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, created)

	// конфликт по id: запись не перезаписывается
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	created, err = repo.Create(context.Background(), profile)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateWithReferrals(t *testing.T) {
	repo, mock := setupRepo(t)
	profile := domain.NewProfile(42, fixedNow)
	profile.ReferralIDs = []int64{7}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profile_referrals (profile_id, referral_id)")).
		WithArgs(int64(42), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), profile)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateRollsBackOnError(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.NewProfile(1, fixedNow))
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetFieldUpserts(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO profiles (id, zodiac_sign, registered_at, updated_at) VALUES ($1, $2, $3, $3)")).
		WithArgs(int64(42), "leo", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetField(context.Background(), 42, domain.FieldZodiacSign, domain.SignCode("leo"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetFieldValidation(t *testing.T) {
	repo, mock := setupRepo(t)

	err := repo.SetField(context.Background(), 42, domain.FieldZodiacSign, "leo")
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	err = repo.SetField(context.Background(), 42, domain.FieldReferrerID, int64(42))
	assert.ErrorIs(t, err, domain.ErrSelfReferral)

	err = repo.SetField(context.Background(), 42, domain.FieldReferralIDs, int64(7))
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	// до базы невалидные значения не доходят
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AddToSet(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles (id, registered_at, updated_at)")).
		WithArgs(int64(1), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profile_referrals")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.AddToSet(context.Background(), 1, domain.FieldReferralIDs, int64(2)))
	assert.NoError(t, mock.ExpectationsWereMet())

	err := repo.AddToSet(context.Background(), 1, domain.FieldReferralIDs, int64(1))
	assert.ErrorIs(t, err, domain.ErrSelfReferral)

	err = repo.AddToSet(context.Background(), 1, domain.FieldZodiacSign, domain.SignCode("leo"))
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(profileColumnNames).
			AddRow(int64(1), nil, nil, nil, nil, "aries", "ru", "none", nil, fixedNow, fixedNow).
			AddRow(int64(2), "bob", nil, nil, "male", "leo", "ru", "none", int64(1), fixedNow, fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profile_id, referral_id FROM profile_referrals")).
		WillReturnRows(sqlmock.NewRows([]string{"profile_id", "referral_id"}).AddRow(int64(1), int64(2)))

	profiles, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, []int64{2}, profiles[0].ReferralIDs)
	assert.Empty(t, profiles[1].ReferralIDs)
	assert.Equal(t, domain.SignCode("leo"), profiles[1].ZodiacSign)
	assert.NoError(t, mock.ExpectationsWereMet())
}
