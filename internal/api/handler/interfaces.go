package handler

import (
	"context"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, sub event.Submission) (*event.Event, error)
	GetEvent(ctx context.Context, id int64) (*event.Event, error)
	ListEvents(ctx context.Context, req event.PageRequest) (*event.Page, error)
	ListEventsByBasePriceRange(ctx context.Context, start, end int, req event.PageRequest) (*event.Page, error)
}

// Pinger は依存先の疎通確認を行う
type Pinger interface {
	PingContext(ctx context.Context) error
}
