package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/podfeed/internal/inspect"
	"github.com/hitoshi/podfeed/internal/middleware"
	"github.com/hitoshi/podfeed/internal/model"
)

// InspectorService は検査ハンドラーが必要とするサービスインターフェース。
type InspectorService interface {
	// InspectBody はリクエストボディのフィードを検査する。
	InspectBody(ctx context.Context, contentType string, body []byte) (*inspect.Result, error)
	// InspectURL はURLからフィードを取得して検査する。
	InspectURL(ctx context.Context, rawURL string) (*inspect.Result, error)
	// MaxBodySize は受け付けるフィード本文の上限バイト数を返す。
	MaxBodySize() int64
}

// InspectHandler はフィード検査のHTTPハンドラー。
type InspectHandler struct {
	service InspectorService
	views   viewBuilder
	logger  *slog.Logger
}

// NewInspectHandler はInspectHandlerを生成する。
// sanitizerがnilの場合、description_htmlは出力しない。
func NewInspectHandler(service InspectorService, sanitizer Sanitizer, logger *slog.Logger) *InspectHandler {
	return &InspectHandler{
		service: service,
		views:   viewBuilder{sanitizer: sanitizer},
		logger:  logger,
	}
}

// InspectBody はリクエストボディで渡されたフィードを検査する。
// POST /api/inspect
func (h *InspectHandler) InspectBody(w http.ResponseWriter, r *http.Request) {
	limit := h.service.MaxBodySize()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.WriteAPIError(w, model.NewBodyTooLargeError(limit))
			return
		}
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの読み取りに失敗しました。",
			Category: "validation",
			Action:   "フィードのXMLをリクエストボディに指定して再度お試しください。",
		})
		return
	}

	result, err := h.service.InspectBody(r.Context(), r.Header.Get("Content-Type"), body)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeResult(w, result)
}

// InspectURL はクエリパラメータのURLからフィードを取得して検査する。
// GET /api/inspect?url=...
func (h *InspectHandler) InspectURL(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		middleware.WriteAPIError(w, model.NewInvalidURLError("urlパラメータが指定されていません"))
		return
	}

	result, err := h.service.InspectURL(r.Context(), rawURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeResult(w, result)
}

// writeResult はエンコードが完了してからステータスを書き込む。
// エンコードに失敗した場合は500の統一エラーを返す。
func (h *InspectHandler) writeResult(w http.ResponseWriter, result *inspect.Result) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(h.views.inspection(result)); err != nil {
		h.logger.Error("レスポンスのエンコードに失敗しました",
			slog.String("inspection_id", result.ID.String()),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("レスポンスの書き込みに失敗しました",
			slog.String("inspection_id", result.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// handleServiceError はサービス層のエラーを統一フォーマットで返す。
// APIError以外のエラーは詳細をログのみに記録する。
func (h *InspectHandler) handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteAPIError(w, apiErr)
		return
	}

	h.logger.Error("検査中に予期しないエラーが発生しました", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// Health はヘルスチェックのレスポンスを返す。
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
