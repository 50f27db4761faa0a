package onboarding

import (
	"testing"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func lastWrite(t *testing.T, r Result) FieldWrite {
	t.Helper()
	require.NotEmpty(t, r.Writes)
	return r.Writes[len(r.Writes)-1]
}

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		err   error
	}{
		{"01.01.2000", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), nil},
		{" 29.02.2000 ", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), nil},
		{"15.06.2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), nil},
		{"31.04.2000", time.Time{}, ErrBirthDateFormat},
		{"29.02.2001", time.Time{}, ErrBirthDateFormat},
		{"1.1.2000", time.Time{}, ErrBirthDateFormat},
		{"2000-01-01", time.Time{}, ErrBirthDateFormat},
		{"завтра", time.Time{}, ErrBirthDateFormat},
		{"16.06.2024", time.Time{}, ErrBirthDateFuture},
		{"01.01.2099", time.Time{}, ErrBirthDateFuture},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBirthDate(tt.input, today)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlow_FullRegistration(t *testing.T) {
	f := Flow{CollectName: true}

	start := f.Start()
	assert.Equal(t, domain.StateAwaitingName, start.Next)
	assert.Equal(t, PromptAskName, start.Prompt)

	r := f.Transition(domain.StateAwaitingName, Text("  Аня "), today)
	assert.Equal(t, domain.StateAwaitingBirthDate, r.Next)
	assert.Equal(t, "Аня", r.Name)
	assert.Equal(t, FieldWrite{Field: domain.FieldDisplayName, Value: "Аня"}, r.Writes[0])
	assert.Equal(t, domain.FieldConversationState, lastWrite(t, r).Field)

	r = f.Transition(domain.StateAwaitingBirthDate, Text("01.08.1995"), today)
	assert.Equal(t, domain.StateAwaitingGenderOrSign, r.Next)
	assert.Equal(t, domain.SignLeo, r.Sign)
	assert.Equal(t, []FieldWrite{
		{Field: domain.FieldBirthDate, Value: time.Date(1995, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Field: domain.FieldZodiacSign, Value: domain.SignLeo},
		{Field: domain.FieldConversationState, Value: domain.StateAwaitingGenderOrSign},
	}, r.Writes)

	r = f.Transition(domain.StateAwaitingGenderOrSign, Action(ActionGenderFemale), today)
	assert.Equal(t, domain.StateNone, r.Next)
	assert.True(t, r.Completed)
	assert.Equal(t, FieldWrite{Field: domain.FieldGender, Value: domain.GenderFemale}, r.Writes[0])
	assert.Equal(t, FieldWrite{Field: domain.FieldConversationState, Value: domain.StateNone}, lastWrite(t, r))
}

func TestFlow_ShortRegistration(t *testing.T) {
	f := Flow{}

	start := f.Start()
	assert.Equal(t, domain.StateAwaitingBirthDate, start.Next)

	r := f.Transition(domain.StateAwaitingBirthDate, Text("01.01.2000"), today)
	assert.Equal(t, domain.StateNone, r.Next)
	assert.True(t, r.Completed)
	assert.Equal(t, PromptCompleted, r.Prompt)
	assert.Equal(t, domain.SignCapricorn, r.Sign)
}

func TestFlow_InvalidInputKeepsState(t *testing.T) {
	f := Flow{CollectName: true}

	tests := []struct {
		name   string
		state  domain.ConversationState
		input  Input
		prompt Prompt
		err    error
	}{
		{"empty name", domain.StateAwaitingName, Text("   "), PromptNameInvalid, ErrNameInvalid},
		{"button instead of name", domain.StateAwaitingName, Action("main_menu"), PromptAskName, nil},
		{"impossible date", domain.StateAwaitingBirthDate, Text("31.04.2000"), PromptBirthDateFormat, ErrBirthDateFormat},
		{"future date", domain.StateAwaitingBirthDate, Text("01.01.2099"), PromptBirthDateFuture, ErrBirthDateFuture},
		{"text instead of gender", domain.StateAwaitingGenderOrSign, Text("женский"), PromptUseButtons, nil},
		{"stale button", domain.StateAwaitingGenderOrSign, Action("horoscope"), PromptUseButtons, nil},
		{"bad date on change", domain.StateChangingBirthDate, Text("32.01.2000"), PromptBirthDateFormat, ErrBirthDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := f.Transition(tt.state, tt.input, today)
			assert.Equal(t, tt.state, r.Next)
			assert.False(t, r.Changed(tt.state))
			assert.Empty(t, r.Writes)
			assert.Equal(t, tt.prompt, r.Prompt)
			if tt.err != nil {
				assert.ErrorIs(t, r.Err, tt.err)
			}
		})
	}
}

func TestFlow_NameTooLong(t *testing.T) {
	f := Flow{CollectName: true}

	name := ""
	for i := 0; i < 65; i++ {
		name += "я"
	}
	r := f.Transition(domain.StateAwaitingName, Text(name), today)
	assert.ErrorIs(t, r.Err, ErrNameInvalid)

	r = f.Transition(domain.StateAwaitingName, Text(name[:len(name)-len("я")]), today)
	assert.NoError(t, r.Err)
	assert.Equal(t, domain.StateAwaitingBirthDate, r.Next)
}

func TestFlow_SignConfirmWritesNoGender(t *testing.T) {
	r := Flow{CollectName: true}.Transition(domain.StateAwaitingGenderOrSign, Action(ActionSignConfirm), today)

	assert.True(t, r.Completed)
	assert.Equal(t, []FieldWrite{{Field: domain.FieldConversationState, Value: domain.StateNone}}, r.Writes)
}

func TestFlow_ChangeBirthDate(t *testing.T) {
	f := Flow{CollectName: true}

	enter := f.ChangeBirthDate()
	assert.Equal(t, domain.StateChangingBirthDate, enter.Next)

	r := f.Transition(domain.StateChangingBirthDate, Text("20.03.1990"), today)
	assert.Equal(t, domain.StateNone, r.Next)
	assert.Equal(t, PromptBirthDateUpdated, r.Prompt)
	assert.Equal(t, domain.SignPisces, r.Sign)
	assert.Equal(t, domain.FieldConversationState, lastWrite(t, r).Field)
}

func TestFlow_NotOnboardingState(t *testing.T) {
	r := Flow{}.Transition(domain.StateNone, Text("привет"), today)
	assert.Equal(t, domain.StateNone, r.Next)
	assert.Empty(t, r.Writes)
}
