package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
	"github.com/sanosuguru/go-event-rest-api/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Code    int                     `json:"code,omitempty"`
	Details string                  `json:"details,omitempty"`
	Errors  []event.ValidationError `json:"errors,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ドメインエラーはここでHTTPステータスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	res := toErrorResponse(err)

	if res.Code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", res.Code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(res.Code)
	} else {
		err = c.JSON(res.Code, res)
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}

func toErrorResponse(err error) ErrorResponse {
	var (
		verrs event.ValidationErrors
		he    *echo.HTTPError
	)

	switch {
	case errors.As(err, &verrs):
		return ErrorResponse{
			Error:  "入力内容に誤りがあります",
			Code:   http.StatusBadRequest,
			Errors: verrs,
		}
	case errors.Is(err, event.ErrEventNotFound):
		return ErrorResponse{Error: "イベントが見つかりません", Code: http.StatusNotFound}
	case errors.Is(err, event.ErrInvalidSortProperty):
		return ErrorResponse{Error: "ソート項目が不正です", Code: http.StatusBadRequest, Details: err.Error()}
	case errors.As(err, &he):
		res := ErrorResponse{Code: he.Code}
		if m, ok := he.Message.(string); ok {
			res.Error = m
		} else {
			res.Error = http.StatusText(he.Code)
		}
		if he.Internal != nil && he.Code < 500 {
			res.Details = he.Internal.Error()
		}
		return res
	}

	return ErrorResponse{Error: "内部サーバーエラー", Code: http.StatusInternalServerError}
}
