package event

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate_Valid(t *testing.T) {
	v := NewValidator()

	errs := v.Validate(validSubmission())

	assert.False(t, errs.HasErrors(), errs.Error())
}

func TestValidator_ValidateStructure_MissingFields(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		modify func(s *Submission)
		field  string
	}{
		{name: "name なし", modify: func(s *Submission) { s.Name = "" }, field: "name"},
		{name: "description なし", modify: func(s *Submission) { s.Description = "" }, field: "description"},
		{name: "location なし", modify: func(s *Submission) { s.Location = "" }, field: "location"},
		{name: "beginEnrollmentDateTime なし", modify: func(s *Submission) { s.BeginEnrollmentDateTime = nil }, field: "beginEnrollmentDateTime"},
		{name: "closeEnrollmentDateTime なし", modify: func(s *Submission) { s.CloseEnrollmentDateTime = nil }, field: "closeEnrollmentDateTime"},
		{name: "beginEventDateTime なし", modify: func(s *Submission) { s.BeginEventDateTime = nil }, field: "beginEventDateTime"},
		{name: "endEventDateTime なし", modify: func(s *Submission) { s.EndEventDateTime = nil }, field: "endEventDateTime"},
		{name: "basePrice なし", modify: func(s *Submission) { s.BasePrice = nil }, field: "basePrice"},
		{name: "maxPrice なし", modify: func(s *Submission) { s.MaxPrice = nil }, field: "maxPrice"},
		{name: "limitOfEnrollment なし", modify: func(s *Submission) { s.LimitOfEnrollment = nil }, field: "limitOfEnrollment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.modify(&s)

			errs := v.Validate(s)

			require.True(t, errs.HasErrors())
			assert.Contains(t, errs.Fields(), tt.field)
			assert.ErrorIs(t, errs, ErrStructural)
			assert.NotErrorIs(t, errs, ErrBusinessRule)
		})
	}
}

func TestValidator_ValidateStructure_Empty(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateStructure(Submission{})

	assert.Len(t, errs, 10)
	for _, e := range errs {
		assert.Equal(t, KindStructural, e.Kind)
	}
}

func TestValidator_ValidateStructure_ZeroPricesAllowed(t *testing.T) {
	v := NewValidator()
	s := validSubmission()
	s.BasePrice = intPtr(0)
	s.MaxPrice = intPtr(0)
	s.LimitOfEnrollment = intPtr(0)

	errs := v.Validate(s)

	assert.False(t, errs.HasErrors(), errs.Error())
}

func TestValidator_ValidateStructure_NegativeNumbers(t *testing.T) {
	v := NewValidator()
	s := validSubmission()
	s.BasePrice = intPtr(-1)
	s.LimitOfEnrollment = intPtr(-10)

	errs := v.ValidateStructure(s)

	require.Len(t, errs, 2)
	assert.ElementsMatch(t, []string{"basePrice", "limitOfEnrollment"}, errs.Fields())
	assert.Equal(t, "-1", errs[0].RejectedValue)
}

func TestValidator_ValidateStructure_ClientAssigned(t *testing.T) {
	v := NewValidator()
	s := validSubmission()
	s.ClientAssigned = []string{"id", "eventStatus", "free", "offline"}

	errs := v.Validate(s)

	require.Len(t, errs, 4)
	assert.Equal(t, []string{"id", "eventStatus", "free", "offline"}, errs.Fields())
	assert.ErrorIs(t, errs, ErrStructural)
}

func TestValidator_Validate_StructuralSkipsBusiness(t *testing.T) {
	v := NewValidator()
	s := validSubmission()
	s.Name = ""
	s.BasePrice = intPtr(10000)

	errs := v.Validate(s)

	assert.Equal(t, []string{"name"}, errs.Fields())
	assert.NotErrorIs(t, errs, ErrBusinessRule)
}

func TestValidator_ValidateBusiness_Price(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		basePrice int
		maxPrice  int
		wantErr   bool
	}{
		{name: "基本価格 < 上限価格", basePrice: 100, maxPrice: 200},
		{name: "基本価格 = 上限価格", basePrice: 200, maxPrice: 200},
		{name: "上限価格 0 は無制限", basePrice: 10000, maxPrice: 0},
		{name: "無料", basePrice: 0, maxPrice: 0},
		{name: "基本価格 > 上限価格", basePrice: 10000, maxPrice: 200, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.BasePrice = intPtr(tt.basePrice)
			s.MaxPrice = intPtr(tt.maxPrice)

			errs := v.ValidateBusiness(s)

			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, "basePrice", errs[0].Field)
				assert.Equal(t, KindBusinessRule, errs[0].Kind)
				assert.ErrorIs(t, errs, ErrBusinessRule)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidator_ValidateBusiness_EndEventDateTime(t *testing.T) {
	v := NewValidator()
	base := validSubmission()

	tests := []struct {
		name string
		end  time.Time
	}{
		{name: "開始日時より前", end: base.BeginEventDateTime.Add(-time.Minute)},
		{name: "受付終了日時より前", end: base.CloseEnrollmentDateTime.Add(-time.Minute)},
		{name: "受付開始日時より前", end: base.BeginEnrollmentDateTime.Add(-time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.EndEventDateTime = timePtr(tt.end)

			errs := v.ValidateBusiness(s)

			assert.Contains(t, errs.Fields(), "endEventDateTime")
			assert.ErrorIs(t, errs, ErrBusinessRule)
		})
	}
}

func TestValidator_ValidateBusiness_EnrollmentOrdering(t *testing.T) {
	v := NewValidator()

	t.Run("受付終了が受付開始より前", func(t *testing.T) {
		s := validSubmission()
		s.CloseEnrollmentDateTime = timePtr(s.BeginEnrollmentDateTime.Add(-time.Hour))

		errs := v.ValidateBusiness(s)

		assert.Equal(t, []string{"closeEnrollmentDateTime"}, errs.Fields())
	})

	t.Run("開始が受付終了より前", func(t *testing.T) {
		s := validSubmission()
		s.BeginEventDateTime = timePtr(s.CloseEnrollmentDateTime.Add(-time.Hour))

		errs := v.ValidateBusiness(s)

		assert.Equal(t, []string{"beginEventDateTime"}, errs.Fields())
	})

	t.Run("同時刻は許容する", func(t *testing.T) {
		s := validSubmission()
		same := *s.BeginEnrollmentDateTime
		s.CloseEnrollmentDateTime = timePtr(same)
		s.BeginEventDateTime = timePtr(same)
		s.EndEventDateTime = timePtr(same)

		errs := v.ValidateBusiness(s)

		assert.Empty(t, errs)
	})
}

func TestValidator_ValidateBusiness_CollectsAll(t *testing.T) {
	v := NewValidator()
	s := validSubmission()
	s.BeginEnrollmentDateTime = timePtr(time.Date(2023, 3, 31, 17, 10, 0, 0, time.UTC))
	s.CloseEnrollmentDateTime = timePtr(time.Date(2023, 3, 30, 17, 10, 0, 0, time.UTC))
	s.BeginEventDateTime = timePtr(time.Date(2023, 3, 25, 17, 10, 0, 0, time.UTC))
	s.EndEventDateTime = timePtr(time.Date(2023, 3, 1, 17, 10, 0, 0, time.UTC))
	s.BasePrice = intPtr(10000)
	s.MaxPrice = intPtr(200)

	errs := v.Validate(s)

	assert.ElementsMatch(t,
		[]string{"basePrice", "endEventDateTime", "closeEnrollmentDateTime", "beginEventDateTime"},
		errs.Fields())
	assert.Equal(t, "2023-03-01T17:10:00", errs[1].RejectedValue)
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "basePrice", Message: "価格の値が不正です", Kind: KindBusinessRule},
		{Field: "name", Message: "必須項目です", Kind: KindStructural},
	}

	assert.Equal(t, "basePrice: 価格の値が不正です; name: 必須項目です", errs.Error())

	var target ValidationErrors
	wrapped := errors.Join(errors.New("バリデーションエラー"), errs)
	require.True(t, errors.As(wrapped, &target))
	assert.Len(t, target, 2)
	assert.ErrorIs(t, wrapped, ErrStructural)
	assert.ErrorIs(t, wrapped, ErrBusinessRule)
}

func TestValidator_ValidateBusiness_MixedOffsets(t *testing.T) {
	v := NewValidator()
	jst := time.FixedZone("JST", 9*60*60)

	t.Run("オフセットが異なっても同じ時点として比較する", func(t *testing.T) {
		s := validSubmission()
		// 2023-03-29T01:00:00Z と 2023-03-29T01:30:00Z
		s.BeginEnrollmentDateTime = timePtr(time.Date(2023, 3, 29, 10, 0, 0, 0, jst))
		s.CloseEnrollmentDateTime = timePtr(time.Date(2023, 3, 29, 1, 30, 0, 0, time.UTC))

		assert.Empty(t, v.ValidateBusiness(s))
	})

	t.Run("UTCに直すと逆順なら拒否する", func(t *testing.T) {
		s := validSubmission()
		// 2023-03-29T09:00:00Z と 2023-03-29T01:30:00Z
		s.BeginEnrollmentDateTime = timePtr(time.Date(2023, 3, 29, 18, 0, 0, 0, jst))
		s.CloseEnrollmentDateTime = timePtr(time.Date(2023, 3, 29, 1, 30, 0, 0, time.UTC))

		errs := v.ValidateBusiness(s)
		assert.Contains(t, errs.Fields(), "closeEnrollmentDateTime")
	})
}
