package event

import "strings"

// Direction はソート方向
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection は "asc" / "desc"（大文字小文字を問わない）を Direction に変換する
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Asc):
		return Asc, true
	case string(Desc):
		return Desc, true
	}
	return "", false
}

// Order は1項目分のソート指定
type Order struct {
	Property  string
	Direction Direction
}

// SortableProperties はソートに使用できる項目
var SortableProperties = []string{
	"id",
	"name",
	"description",
	"beginEnrollmentDateTime",
	"closeEnrollmentDateTime",
	"beginEventDateTime",
	"endEventDateTime",
	"basePrice",
	"maxPrice",
	"limitOfEnrollment",
	"location",
	"eventStatus",
}

// IsSortable はソート可能な項目かどうかを返す
func IsSortable(property string) bool {
	for _, p := range SortableProperties {
		if p == property {
			return true
		}
	}
	return false
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// PageRequest はページ番号（0始まり）、ページサイズ、ソート指定
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Normalize は範囲外の値をデフォルトまたは上限に補正する
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset は取得開始位置を返す
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page は結果集合の1ページ分
type Page struct {
	Content       []*Event
	Number        int
	Size          int
	TotalElements int64
}

// NewPage は PageRequest と総件数から Page を作成する
func NewPage(content []*Event, req PageRequest, total int64) *Page {
	if content == nil {
		content = []*Event{}
	}
	return &Page{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages は総ページ数を返す
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// IsFirst は先頭ページかどうかを返す
func (p *Page) IsFirst() bool {
	return p.Number == 0
}

// IsLast は最終ページかどうかを返す。結果が空の場合も true
func (p *Page) IsLast() bool {
	return p.Number+1 >= p.TotalPages()
}

// HasNext は次のページがあるかどうかを返す
func (p *Page) HasNext() bool {
	return !p.IsLast()
}
