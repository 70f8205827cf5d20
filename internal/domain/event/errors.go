package event

import (
	"errors"
	"strings"
)

// Event ドメインのエラー定義
var (
	ErrEventNotFound       = errors.New("イベントが見つかりません")
	ErrStructural          = errors.New("入力形式が不正です")
	ErrBusinessRule        = errors.New("入力値の組み合わせが不正です")
	ErrInvalidSortProperty = errors.New("ソートできない項目です")
)

// Kind は検証エラーの種別
type Kind string

const (
	KindStructural   Kind = "structural"
	KindBusinessRule Kind = "business_rule"
)

// ValidationError は項目単位の検証エラー
type ValidationError struct {
	Field         string `json:"field"`
	RejectedValue string `json:"rejectedValue"`
	Message       string `json:"message"`
	Kind          Kind   `json:"kind"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap は種別に対応するセンチネルエラーを返す
func (e ValidationError) Unwrap() error {
	if e.Kind == KindBusinessRule {
		return ErrBusinessRule
	}
	return ErrStructural
}

// ValidationErrors は検証エラーの集合
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// HasErrors はエラーが1件以上あるかを返す
func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

// Fields はエラーのある項目名を返す
func (errs ValidationErrors) Fields() []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}
