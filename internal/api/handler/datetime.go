package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout はレスポンスで使う日時の形式（タイムゾーンなし）
const DateTimeLayout = "2006-01-02T15:04:05"

// 受け付ける日時の形式。タイムゾーンがない場合はUTCとして扱い、オフセット付きはUTCに変換する
var acceptedLayouts = []string{
	"2006-01-02T15:04",
	DateTimeLayout,
	time.RFC3339,
}

// DateTime はJSONで "2023-03-29T17:10" 形式を扱う日時
type DateTime struct {
	time.Time
}

// UnmarshalJSON は受け付け可能な形式のいずれかで日時をパースする
func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("日時は文字列で指定してください: %w", err)
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("日時の形式が不正です: %q", s)
}

// MarshalJSON は UTC の DateTimeLayout 形式で出力する
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(DateTimeLayout))
}

func (d *DateTime) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
