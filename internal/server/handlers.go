package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"nyoken/internal/hub"
	"nyoken/internal/record"
)

// クライアント向けメッセージ（検査装置側の表示言語に合わせている）
const (
	msgMissingField = "Data tidak valid: hasil atau flag abnormal tidak ada"
	msgInvalidDate  = "Format tanggal tidak valid. Gunakan YYYY-MM-DD HH:MM"
	msgNotFound     = "Data tidak ditemukan"
	msgServerError  = "Kesalahan server: "
)

// Handler はHTTPエンドポイントの実装を束ねる
type Handler struct {
	service *record.Service
	hub     *hub.Hub
}

// NewHandler は新しいHandlerを作成する
func NewHandler(service *record.Service, h *hub.Hub) *Handler {
	return &Handler{service: service, hub: h}
}

// IngestResponse は取り込み成功時のレスポンス
type IngestResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// DataResponse は単一レコード取得のレスポンス
type DataResponse struct {
	Status string        `json:"status"`
	Data   record.Record `json:"data"`
}

// AllDataResponse は全件取得のレスポンス
type AllDataResponse struct {
	Status string                   `json:"status"`
	Count  int                      `json:"count"`
	Data   map[string]record.Record `json:"data"`
}

// ErrorResponse はエラー時の共通レスポンス
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReceiveData は検査装置からの測定データを受信するエンドポイントの実装
// 検証エラーは400、ボディの解析失敗などの想定外エラーは500を返す
func (h *Handler) ReceiveData(c *gin.Context) {
	var raw record.RawRecord
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  "error",
			Message: msgServerError + err.Error(),
		})
		return
	}

	rec, err := h.service.Ingest(raw)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrMissingField):
			c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: msgMissingField})
		case errors.Is(err, record.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: msgInvalidDate})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Status:  "error",
				Message: msgServerError + err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, IngestResponse{
		Status:    "success",
		ID:        rec.ID,
		Timestamp: rec.DateTime,
	})
}

// GetSingleData は単一レコード取得エンドポイントの実装
func (h *Handler) GetSingleData(c *gin.Context) {
	rec, found := h.service.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Status: "error", Message: msgNotFound})
		return
	}

	c.JSON(http.StatusOK, DataResponse{Status: "success", Data: rec})
}

// GetAllData は全レコード取得エンドポイントの実装
func (h *Handler) GetAllData(c *gin.Context) {
	count, data := h.service.All()

	c.JSON(http.StatusOK, AllDataResponse{
		Status: "success",
		Count:  count,
		Data:   data,
	})
}

// ManualInput は検査装置なしの動作確認用エンドポイントの実装
// リクエストボディは無視され、固定内容のサンプルレコードが保存される
func (h *Handler) ManualInput(c *gin.Context) {
	rec := h.service.IngestSample()

	c.JSON(http.StatusCreated, IngestResponse{
		Status:    "success",
		ID:        rec.ID,
		Timestamp: rec.DateTime,
	})
}

// StreamWebSocket はWebSocket配信エンドポイントの実装
func (h *Handler) StreamWebSocket(c *gin.Context) {
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		// アップグレード失敗時はupgraderが既にレスポンスを書き込んでいる
		log.Printf("WebSocket接続の確立に失敗: %v", err)
	}
}

// StreamEvents はServer-Sent Events配信エンドポイントの実装
// WebSocketが使えないクライアント向けの代替経路
func (h *Handler) StreamEvents(c *gin.Context) {
	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub.ID)

	// レスポンスヘッダーを設定
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	// クライアント切断を検知するためのコンテキスト
	clientGone := c.Request.Context().Done()

	// 配信ループ
	for {
		select {
		case <-clientGone:
			// クライアントが切断された
			return

		case env, ok := <-sub.C:
			if !ok {
				// 購読が解除された
				return
			}

			if err := sse.Encode(c.Writer, sse.Event{
				Event: hub.EventNewData,
				Data:  env,
			}); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Index はダッシュボードページを返す
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML())
}
