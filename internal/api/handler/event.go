package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest はイベント作成リクエスト
// 日時と数値はポインタにして、未指定とゼロ値を区別する
type CreateEventRequest struct {
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
	BeginEnrollmentDateTime *DateTime `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime *DateTime `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      *DateTime `json:"beginEventDateTime"`
	EndEventDateTime        *DateTime `json:"endEventDateTime"`
	BasePrice               *int      `json:"basePrice"`
	MaxPrice                *int      `json:"maxPrice"`
	LimitOfEnrollment       *int      `json:"limitOfEnrollment"`
	Location                string    `json:"location"`

	// サーバーが決める項目。送られてきた場合は拒否する
	ID          json.RawMessage `json:"id,omitempty"`
	EventStatus json.RawMessage `json:"eventStatus,omitempty"`
	Status      json.RawMessage `json:"status,omitempty"`
	Free        json.RawMessage `json:"free,omitempty"`
	Offline     json.RawMessage `json:"offline,omitempty"`
}

// toSubmission はリクエストを検証前の Submission に変換する
func (r *CreateEventRequest) toSubmission() event.Submission {
	var assigned []string
	for _, f := range []struct {
		key string
		raw json.RawMessage
	}{
		{"id", r.ID},
		{"eventStatus", r.EventStatus},
		{"status", r.Status},
		{"free", r.Free},
		{"offline", r.Offline},
	} {
		if f.raw != nil {
			assigned = append(assigned, f.key)
		}
	}

	return event.Submission{
		Name:                    r.Name,
		Description:             r.Description,
		BeginEnrollmentDateTime: r.BeginEnrollmentDateTime.ptr(),
		CloseEnrollmentDateTime: r.CloseEnrollmentDateTime.ptr(),
		BeginEventDateTime:      r.BeginEventDateTime.ptr(),
		EndEventDateTime:        r.EndEventDateTime.ptr(),
		BasePrice:               r.BasePrice,
		MaxPrice:                r.MaxPrice,
		LimitOfEnrollment:       r.LimitOfEnrollment,
		Location:                r.Location,
		ClientAssigned:          assigned,
	}
}

type EventResponse struct {
	ID                      int64    `json:"id"`
	Name                    string   `json:"name"`
	Description             string   `json:"description"`
	BeginEnrollmentDateTime DateTime `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime DateTime `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      DateTime `json:"beginEventDateTime"`
	EndEventDateTime        DateTime `json:"endEventDateTime"`
	BasePrice               int      `json:"basePrice"`
	MaxPrice                int      `json:"maxPrice"`
	LimitOfEnrollment       int      `json:"limitOfEnrollment"`
	Location                string   `json:"location"`
	Free                    bool     `json:"free"`
	Offline                 bool     `json:"offline"`
	EventStatus             string   `json:"eventStatus"`
}

func toEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{
		ID:                      e.ID,
		Name:                    e.Name,
		Description:             e.Description,
		BeginEnrollmentDateTime: DateTime{e.BeginEnrollmentDateTime},
		CloseEnrollmentDateTime: DateTime{e.CloseEnrollmentDateTime},
		BeginEventDateTime:      DateTime{e.BeginEventDateTime},
		EndEventDateTime:        DateTime{e.EndEventDateTime},
		BasePrice:               e.BasePrice,
		MaxPrice:                e.MaxPrice,
		LimitOfEnrollment:       e.LimitOfEnrollment,
		Location:                e.Location,
		Free:                    e.Free,
		Offline:                 e.Offline,
		EventStatus:             string(e.Status),
	}
}

// Create は新しいイベントを作成する
// 成功すると 201 と Location ヘッダーを返す
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です").SetInternal(err)
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), req.toSubmission())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/events/%d", e.ID))
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID は指定IDのイベントを取得する
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "イベントIDが不正です").SetInternal(err)
	}

	e, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List はイベント一覧をページ単位で返す
func (h *EventHandler) List(c echo.Context) error {
	req, err := bindPageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.eventService.ListEvents(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// ListByBasePrice は基本価格が startBasePrice 以上 endBasePrice 以下のイベントを返す
// 範囲が逆や負の値でもそのままストアに渡し、該当がなければ空のページになる
func (h *EventHandler) ListByBasePrice(c echo.Context) error {
	var start, end int
	err := echo.QueryParamsBinder(c).
		MustInt("startBasePrice", &start).
		MustInt("endBasePrice", &end).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startBasePrice と endBasePrice は必須の整数です").SetInternal(err)
	}

	req, err := bindPageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.eventService.ListEventsByBasePriceRange(c.Request().Context(), start, end, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}
