package event

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const rejectedTimeLayout = "2006-01-02T15:04:05"

// Validator はイベント作成内容の検証を行う
// 構造検証（必須項目・数値範囲・サーバー管理項目）と業務ルール検証の2段階
type Validator struct {
	structural *validator.Validate
}

// NewValidator は新しい Validator を作成する
func NewValidator() *Validator {
	return &Validator{structural: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate は構造検証を行い、通過した場合のみ業務ルール検証を行う
func (v *Validator) Validate(s Submission) ValidationErrors {
	if errs := v.ValidateStructure(s); errs.HasErrors() {
		return errs
	}
	return v.ValidateBusiness(s)
}

// ValidateStructure は必須項目、数値の範囲、サーバー管理項目の混入を検証する
func (v *Validator) ValidateStructure(s Submission) ValidationErrors {
	var errs ValidationErrors

	for _, key := range s.ClientAssigned {
		errs = append(errs, ValidationError{
			Field:   key,
			Message: "サーバー側で割り当てられる項目は指定できません",
			Kind:    KindStructural,
		})
	}

	err := v.structural.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return append(errs, ValidationError{
			Field:   "event",
			Message: err.Error(),
			Kind:    KindStructural,
		})
	}
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}
	return errs
}

// ValidateBusiness は価格と日時の整合性を検証する
// 違反はすべて収集し、途中で打ち切らない
func (v *Validator) ValidateBusiness(s Submission) ValidationErrors {
	var errs ValidationErrors

	if s.BasePrice != nil && s.MaxPrice != nil {
		base, ceiling := *s.BasePrice, *s.MaxPrice
		if ceiling != 0 && base > ceiling {
			errs = append(errs, ValidationError{
				Field:         "basePrice",
				RejectedValue: fmt.Sprintf("basePrice=%d, maxPrice=%d", base, ceiling),
				Message:       "価格の値が不正です（基本価格は上限価格以下である必要があります）",
				Kind:          KindBusinessRule,
			})
		}
	}

	beginEnroll := s.BeginEnrollmentDateTime
	closeEnroll := s.CloseEnrollmentDateTime
	beginEvent := s.BeginEventDateTime
	endEvent := s.EndEventDateTime

	if before(endEvent, beginEvent) || before(endEvent, closeEnroll) || before(endEvent, beginEnroll) {
		errs = append(errs, timeError("endEventDateTime", endEvent,
			"終了日時は開始日時および受付期間より後である必要があります"))
	}
	if before(closeEnroll, beginEnroll) {
		errs = append(errs, timeError("closeEnrollmentDateTime", closeEnroll,
			"受付終了日時は受付開始日時より後である必要があります"))
	}
	if before(beginEvent, closeEnroll) || before(beginEvent, beginEnroll) {
		errs = append(errs, timeError("beginEventDateTime", beginEvent,
			"開始日時は受付終了日時より後である必要があります"))
	}

	return errs
}

// before は両方が指定されていて a が b より前の場合に true を返す
func before(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Before(*b)
}

func timeError(field string, t *time.Time, msg string) ValidationError {
	return ValidationError{
		Field:         field,
		RejectedValue: t.Format(rejectedTimeLayout),
		Message:       msg,
		Kind:          KindBusinessRule,
	}
}

func toValidationError(fe validator.FieldError) ValidationError {
	ve := ValidationError{
		Field: lowerCamel(fe.Field()),
		Kind:  KindStructural,
	}
	switch fe.Tag() {
	case "required":
		ve.Message = "必須項目です"
	case "gte":
		ve.Message = fmt.Sprintf("%s以上である必要があります", fe.Param())
		ve.RejectedValue = fmt.Sprintf("%v", fe.Value())
	default:
		ve.Message = fmt.Sprintf("%s の検証に失敗しました", fe.Tag())
		ve.RejectedValue = fmt.Sprintf("%v", fe.Value())
	}
	return ve
}

// lowerCamel は Go のフィールド名を JSON の項目名に変換する
func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
