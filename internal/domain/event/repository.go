package event

import "context"

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを保存し、ID を割り当てる
	Create(ctx context.Context, event *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id int64) (*Event, error)

	// FindAll はイベントをページ単位で取得する
	FindAll(ctx context.Context, req PageRequest) (*Page, error)

	// FindByBasePriceBetween は基本価格が start 以上 end 以下のイベントをページ単位で取得する
	FindByBasePriceBetween(ctx context.Context, start, end int, req PageRequest) (*Page, error)
}
