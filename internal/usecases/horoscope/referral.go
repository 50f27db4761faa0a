package horoscope

import (
	"context"
	"errors"
	"strconv"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// applyReferral привязывает нового пользователя к пригласившему по аргументу /start.
// Ошибки не прерывают регистрацию.
func (s *Service) applyReferral(ctx context.Context, ss *session, arg string) {
	referrerID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || referrerID <= 0 {
		s.Log.Debug("invalid referral argument", "user_id", ss.profile.ID, "arg", arg)
		return
	}

	if referrerID == ss.profile.ID {
		s.Log.Info("self referral ignored", "user_id", ss.profile.ID)
		return
	}
	if ss.profile.ReferrerID != nil {
		return
	}

	if _, err := s.Profiles.Get(ctx, referrerID); err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			s.Log.Warn("failed to get referrer",
				"error", err,
				"user_id", ss.profile.ID,
				"referrer_id", referrerID,
			)
		}
		return
	}

	if err := s.setField(ctx, ss, domain.FieldReferrerID, referrerID); err != nil {
		s.Log.Warn("failed to set referrer",
			"error", err,
			"user_id", ss.profile.ID,
			"referrer_id", referrerID,
		)
		return
	}

	if err := s.Profiles.AddToSet(ctx, referrerID, domain.FieldReferralIDs, ss.profile.ID); err != nil {
		s.Log.Warn("failed to add referral",
			"error", err,
			"user_id", ss.profile.ID,
			"referrer_id", referrerID,
		)
		return
	}

	s.Log.Info("referral applied", "user_id", ss.profile.ID, "referrer_id", referrerID)
}
