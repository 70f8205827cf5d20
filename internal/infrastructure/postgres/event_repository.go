package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
)

const eventColumns = `id, name, description, begin_enrollment_date_time, close_enrollment_date_time,
	begin_event_date_time, end_event_date_time, base_price, max_price, limit_of_enrollment,
	location, free, offline, event_status, created_at`

// sortColumns はソート項目名とカラム名の対応
var sortColumns = map[string]string{
	"id":                      "id",
	"name":                    "name",
	"description":             "description",
	"beginEnrollmentDateTime": "begin_enrollment_date_time",
	"closeEnrollmentDateTime": "close_enrollment_date_time",
	"beginEventDateTime":      "begin_event_date_time",
	"endEventDateTime":        "end_event_date_time",
	"basePrice":               "base_price",
	"maxPrice":                "max_price",
	"limitOfEnrollment":       "limit_of_enrollment",
	"location":                "location",
	"eventStatus":             "event_status",
}

// eventRow はDBの行を表す構造体
type eventRow struct {
	ID                      int64     `db:"id"`
	Name                    string    `db:"name"`
	Description             *string   `db:"description"`
	BeginEnrollmentDateTime time.Time `db:"begin_enrollment_date_time"`
	CloseEnrollmentDateTime time.Time `db:"close_enrollment_date_time"`
	BeginEventDateTime      time.Time `db:"begin_event_date_time"`
	EndEventDateTime        time.Time `db:"end_event_date_time"`
	BasePrice               int       `db:"base_price"`
	MaxPrice                int       `db:"max_price"`
	LimitOfEnrollment       int       `db:"limit_of_enrollment"`
	Location                *string   `db:"location"`
	Free                    bool      `db:"free"`
	Offline                 bool      `db:"offline"`
	EventStatus             string    `db:"event_status"`
	CreatedAt               time.Time `db:"created_at"`
}

// toEntity はeventRowをEventエンティティに変換する
func (r *eventRow) toEntity() *event.Event {
	var desc, location string
	if r.Description != nil {
		desc = *r.Description
	}
	if r.Location != nil {
		location = *r.Location
	}
	return &event.Event{
		ID:                      r.ID,
		Name:                    r.Name,
		Description:             desc,
		BeginEnrollmentDateTime: r.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: r.CloseEnrollmentDateTime,
		BeginEventDateTime:      r.BeginEventDateTime,
		EndEventDateTime:        r.EndEventDateTime,
		BasePrice:               r.BasePrice,
		MaxPrice:                r.MaxPrice,
		LimitOfEnrollment:       r.LimitOfEnrollment,
		Location:                location,
		Free:                    r.Free,
		Offline:                 r.Offline,
		Status:                  event.Status(r.EventStatus),
		CreatedAt:               r.CreatedAt,
	}
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create は新しいイベントを作成する。ID と作成日時はDBが割り当てる
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (name, description, begin_enrollment_date_time, close_enrollment_date_time,
			begin_event_date_time, end_event_date_time, base_price, max_price, limit_of_enrollment,
			location, free, offline, event_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		e.Name, nullable(e.Description),
		e.BeginEnrollmentDateTime, e.CloseEnrollmentDateTime,
		e.BeginEventDateTime, e.EndEventDateTime,
		e.BasePrice, e.MaxPrice, e.LimitOfEnrollment,
		nullable(e.Location), e.Free, e.Offline, string(e.Status),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var row eventRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// FindAll はイベントをページ単位で取得する
func (r *EventRepository) FindAll(ctx context.Context, req event.PageRequest) (*event.Page, error) {
	return r.findPage(ctx, "", nil, req)
}

// FindByBasePriceBetween は基本価格が start 以上 end 以下のイベントをページ単位で取得する
func (r *EventRepository) FindByBasePriceBetween(ctx context.Context, start, end int, req event.PageRequest) (*event.Page, error) {
	return r.findPage(ctx, "WHERE base_price BETWEEN $1 AND $2", []any{start, end}, req)
}

// findPage は件数取得とページ取得を同じ読み取り専用トランザクションで行う
func (r *EventRepository) findPage(ctx context.Context, where string, args []any, req event.PageRequest) (*event.Page, error) {
	orderBy, err := orderByClause(req.Sort)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var total int64
	countQuery := strings.TrimSpace(`SELECT COUNT(*) FROM events ` + where)
	if err := tx.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("イベント件数取得に失敗しました: %w", err)
	}

	n := len(args)
	selectQuery := fmt.Sprintf(`SELECT %s FROM events %s %s LIMIT $%d OFFSET $%d`,
		eventColumns, where, orderBy, n+1, n+2)
	pageArgs := append(append([]any{}, args...), req.Size, req.Offset())

	var rows []eventRow
	if err := tx.SelectContext(ctx, &rows, selectQuery, pageArgs...); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("トランザクション確定に失敗しました: %w", err)
	}

	events := make([]*event.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toEntity()
	}
	return event.NewPage(events, req, total), nil
}

// orderByClause はソート指定から ORDER BY 句を組み立てる
// 同順位の並びを安定させるため、末尾に id ASC を付ける
func orderByClause(orders []event.Order) (string, error) {
	parts := make([]string, 0, len(orders)+1)
	hasID := false
	for _, o := range orders {
		col, ok := sortColumns[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %s", event.ErrInvalidSortProperty, o.Property)
		}
		dir := "ASC"
		if o.Direction == event.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
		if col == "id" {
			hasID = true
		}
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
