package event

import (
	"strings"
	"time"
)

// Status はイベントの状態を表す
type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusPublished         Status = "PUBLISHED"
	StatusEnrollmentStarted Status = "ENROLLMENT_STARTED"
	StatusEnrollmentClosed  Status = "ENROLLMENT_CLOSED"
	StatusBeganEnrollment   Status = "BEGAN_ENROLLMENT"
	StatusEnded             Status = "ENDED"
)

// IsValid は定義済みの状態かどうかを返す
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusEnrollmentStarted,
		StatusEnrollmentClosed, StatusBeganEnrollment, StatusEnded:
		return true
	}
	return false
}

// Event はイベントエンティティを表す
type Event struct {
	ID                      int64
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginEventDateTime      time.Time
	EndEventDateTime        time.Time
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
	Location                string // 空の場合はオンライン開催
	Free                    bool
	Offline                 bool
	Status                  Status
	CreatedAt               time.Time
}

// NewEvent は検証済みの申請内容から DRAFT 状態のイベントを作成する
// 構造検証を通過していない Submission を渡してはならない
func NewEvent(s Submission) *Event {
	e := &Event{
		Name:                    s.Name,
		Description:             s.Description,
		BeginEnrollmentDateTime: deref(s.BeginEnrollmentDateTime),
		CloseEnrollmentDateTime: deref(s.CloseEnrollmentDateTime),
		BeginEventDateTime:      deref(s.BeginEventDateTime),
		EndEventDateTime:        deref(s.EndEventDateTime),
		BasePrice:               derefInt(s.BasePrice),
		MaxPrice:                derefInt(s.MaxPrice),
		LimitOfEnrollment:       derefInt(s.LimitOfEnrollment),
		Location:                s.Location,
		Status:                  StatusDraft,
	}
	e.UpdateDerived()
	return e
}

// UpdateDerived は価格と開催場所から free / offline を再計算する
func (e *Event) UpdateDerived() {
	e.Free = e.BasePrice == 0 && e.MaxPrice == 0
	e.Offline = strings.TrimSpace(e.Location) != ""
}

// Submission はクライアントから送信されたイベント作成内容
// 未指定とゼロ値を区別するため、価格と日時はポインタで保持する
type Submission struct {
	Name                    string     `validate:"required"`
	Description             string     `validate:"required"`
	BeginEnrollmentDateTime *time.Time `validate:"required"`
	CloseEnrollmentDateTime *time.Time `validate:"required"`
	BeginEventDateTime      *time.Time `validate:"required"`
	EndEventDateTime        *time.Time `validate:"required"`
	BasePrice               *int       `validate:"required,gte=0"`
	MaxPrice                *int       `validate:"required,gte=0"`
	LimitOfEnrollment       *int       `validate:"required,gte=0"`
	Location                string     `validate:"required"`

	// ClientAssigned はクライアントが送ってきたサーバー管理項目のキー
	ClientAssigned []string `validate:"-"`
}

// deref は日時をUTCにそろえて返す。保存先はタイムゾーンを持たない
func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
