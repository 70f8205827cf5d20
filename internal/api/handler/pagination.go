package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
)

// PageMetadata はページ情報
type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// PageResponse は一覧レスポンス
type PageResponse struct {
	Content []*EventResponse `json:"content"`
	Page    PageMetadata     `json:"page"`
}

func toPageResponse(p *event.Page) *PageResponse {
	content := make([]*EventResponse, len(p.Content))
	for i, e := range p.Content {
		content[i] = toEventResponse(e)
	}
	return &PageResponse{
		Content: content,
		Page: PageMetadata{
			Size:          p.Size,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages(),
			Number:        p.Number,
		},
	}
}

// bindPageRequest は page, size, sort クエリを PageRequest に変換する
// page は0始まり。sort は "name,DESC" の形式で複数指定できる
func bindPageRequest(c echo.Context) (event.PageRequest, error) {
	var (
		req   event.PageRequest
		sorts []string
	)
	err := echo.QueryParamsBinder(c).
		Int("page", &req.Page).
		Int("size", &req.Size).
		Strings("sort", &sorts).
		BindError()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "page と size は整数で指定してください").SetInternal(err)
	}

	for _, s := range sorts {
		orders, err := parseSort(s)
		if err != nil {
			return req, err
		}
		req.Sort = append(req.Sort, orders...)
	}
	return req.Normalize(), nil
}

// parseSort は "name,basePrice,DESC" のような指定を解釈する
// 末尾が方向であればその前の全項目に適用し、省略時は昇順とする
func parseSort(s string) ([]event.Order, error) {
	var props []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}
	if len(props) == 0 {
		return nil, nil
	}

	dir := event.Asc
	if d, ok := event.ParseDirection(props[len(props)-1]); ok {
		dir = d
		props = props[:len(props)-1]
	}

	orders := make([]event.Order, 0, len(props))
	for _, p := range props {
		if !event.IsSortable(p) {
			return nil, fmt.Errorf("%w: %s", event.ErrInvalidSortProperty, p)
		}
		orders = append(orders, event.Order{Property: p, Direction: dir})
	}
	return orders, nil
}
