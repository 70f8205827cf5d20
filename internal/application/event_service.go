package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
	"github.com/sanosuguru/go-event-rest-api/internal/pkg/logger"
	"github.com/sanosuguru/go-event-rest-api/internal/pkg/metrics"
)

// RoutingKeyEventCreated はイベント作成通知のルーティングキー
const RoutingKeyEventCreated = "event.created"

// EventPublisher はイベント作成の通知先
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// EventCreatedMessage は event.created として発行される内容
type EventCreatedMessage struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	BasePrice int    `json:"basePrice"`
	MaxPrice  int    `json:"maxPrice"`
	Free      bool   `json:"free"`
	Offline   bool   `json:"offline"`
}

type EventService struct {
	eventRepo event.Repository
	validator *event.Validator
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// EventServiceOption は EventService の任意設定
type EventServiceOption func(*EventService)

// WithPublisher はイベント作成通知の発行先を設定する
func WithPublisher(p EventPublisher) EventServiceOption {
	return func(s *EventService) { s.publisher = p }
}

// WithMetrics はメトリクスの記録先を設定する
func WithMetrics(m *metrics.Metrics) EventServiceOption {
	return func(s *EventService) { s.metrics = m }
}

func NewEventService(eventRepo event.Repository, opts ...EventServiceOption) *EventService {
	s := &EventService{eventRepo: eventRepo, validator: event.NewValidator()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent は構造検証 → 業務ルール検証 → 派生項目の計算 → 保存の順に処理する
// 検証に失敗した場合は event.ValidationErrors を含むエラーを返し、リポジトリは呼ばない
func (s *EventService) CreateEvent(ctx context.Context, sub event.Submission) (*event.Event, error) {
	if errs := s.validator.ValidateStructure(sub); errs.HasErrors() {
		s.metrics.RecordValidationFailure(string(event.KindStructural))
		return nil, fmt.Errorf("バリデーションエラー: %w", errs)
	}
	if errs := s.validator.ValidateBusiness(sub); errs.HasErrors() {
		s.metrics.RecordValidationFailure(string(event.KindBusinessRule))
		return nil, fmt.Errorf("バリデーションエラー: %w", errs)
	}

	e := event.NewEvent(sub)
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	s.metrics.RecordEventCreated()

	logger.Info("イベントを作成しました",
		zap.Int64("event_id", e.ID),
		zap.String("name", e.Name),
	)

	s.publishCreated(ctx, e)
	return e, nil
}

// publishCreated は作成通知を発行する。失敗してもイベント作成は成功扱い
func (s *EventService) publishCreated(ctx context.Context, e *event.Event) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, RoutingKeyEventCreated, EventCreatedMessage{
		ID:        e.ID,
		Name:      e.Name,
		Status:    string(e.Status),
		BasePrice: e.BasePrice,
		MaxPrice:  e.MaxPrice,
		Free:      e.Free,
		Offline:   e.Offline,
	})
	s.metrics.RecordPublish(err)
	if err != nil {
		logger.Warn("イベント作成通知の発行に失敗しました",
			zap.Int64("event_id", e.ID),
			zap.Error(err),
		)
	}
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, req event.PageRequest) (*event.Page, error) {
	req = req.Normalize()
	page, err := s.eventRepo.FindAll(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}
	return page, nil
}

// ListEventsByBasePriceRange は基本価格が start 以上 end 以下のイベントを返す
func (s *EventService) ListEventsByBasePriceRange(ctx context.Context, start, end int, req event.PageRequest) (*event.Page, error) {
	req = req.Normalize()
	page, err := s.eventRepo.FindByBasePriceBetween(ctx, start, end, req)
	if err != nil {
		return nil, fmt.Errorf("価格帯によるイベント取得に失敗しました: %w", err)
	}
	return page, nil
}
