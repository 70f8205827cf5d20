package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
)

type compareFunc func(a, b *event.Event) int

// comparators はソート項目ごとの比較関数
var comparators = map[string]compareFunc{
	"id":          func(a, b *event.Event) int { return cmp.Compare(a.ID, b.ID) },
	"name":        func(a, b *event.Event) int { return strings.Compare(a.Name, b.Name) },
	"description": func(a, b *event.Event) int { return strings.Compare(a.Description, b.Description) },
	"beginEnrollmentDateTime": func(a, b *event.Event) int {
		return a.BeginEnrollmentDateTime.Compare(b.BeginEnrollmentDateTime)
	},
	"closeEnrollmentDateTime": func(a, b *event.Event) int {
		return a.CloseEnrollmentDateTime.Compare(b.CloseEnrollmentDateTime)
	},
	"beginEventDateTime": func(a, b *event.Event) int { return a.BeginEventDateTime.Compare(b.BeginEventDateTime) },
	"endEventDateTime":   func(a, b *event.Event) int { return a.EndEventDateTime.Compare(b.EndEventDateTime) },
	"basePrice":          func(a, b *event.Event) int { return cmp.Compare(a.BasePrice, b.BasePrice) },
	"maxPrice":           func(a, b *event.Event) int { return cmp.Compare(a.MaxPrice, b.MaxPrice) },
	"limitOfEnrollment":  func(a, b *event.Event) int { return cmp.Compare(a.LimitOfEnrollment, b.LimitOfEnrollment) },
	"location":           func(a, b *event.Event) int { return strings.Compare(a.Location, b.Location) },
	"eventStatus":        func(a, b *event.Event) int { return strings.Compare(string(a.Status), string(b.Status)) },
}

// EventRepository はプロセス内メモリにイベントを保持するリポジトリ
// DBを用意できない開発環境やテストで使う
type EventRepository struct {
	mu     sync.RWMutex
	events []*event.Event
	nextID int64
}

// NewEventRepository は空の EventRepository を作成する
func NewEventRepository() *EventRepository {
	return &EventRepository{nextID: 1}
}

// Create はIDを採番してイベントを保存する
func (r *EventRepository) Create(_ context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	stored := *e
	r.events = append(r.events, &stored)
	return nil
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(_ context.Context, id int64) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, event.ErrEventNotFound
}

// FindAll はイベントをページ単位で取得する
func (r *EventRepository) FindAll(_ context.Context, req event.PageRequest) (*event.Page, error) {
	return r.findPage(req, func(*event.Event) bool { return true })
}

// FindByBasePriceBetween は基本価格が start 以上 end 以下のイベントをページ単位で取得する
func (r *EventRepository) FindByBasePriceBetween(_ context.Context, start, end int, req event.PageRequest) (*event.Page, error) {
	return r.findPage(req, func(e *event.Event) bool {
		return e.BasePrice >= start && e.BasePrice <= end
	})
}

func (r *EventRepository) findPage(req event.PageRequest, match func(*event.Event) bool) (*event.Page, error) {
	less, err := sortFunc(req.Sort)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		if match(e) {
			c := *e
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	slices.SortStableFunc(matched, less)

	total := int64(len(matched))
	from := min(req.Offset(), len(matched))
	to := min(from+req.Size, len(matched))
	return event.NewPage(matched[from:to], req, total), nil
}

// sortFunc は並び順の指定から比較関数を組み立てる。最後は id 昇順で比較する
func sortFunc(orders []event.Order) (compareFunc, error) {
	fns := make([]compareFunc, 0, len(orders)+1)
	for _, o := range orders {
		c, ok := comparators[o.Property]
		if !ok {
			return nil, fmt.Errorf("%w: %s", event.ErrInvalidSortProperty, o.Property)
		}
		if o.Direction == event.Desc {
			asc := c
			c = func(a, b *event.Event) int { return -asc(a, b) }
		}
		fns = append(fns, c)
	}
	fns = append(fns, comparators["id"])

	return func(a, b *event.Event) int {
		for _, f := range fns {
			if n := f(a, b); n != 0 {
				return n
			}
		}
		return 0
	}, nil
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
