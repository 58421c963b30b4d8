package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"nyoken/internal/config"
	"nyoken/internal/hub"
	"nyoken/internal/record"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	hub        *hub.Hub
	service    *record.Service
}

// New は新しいServerインスタンスを作成する
// レコードストア・配信ハブ・取り込みサービスはここで組み立てられる
func New(cfg *config.Config) *Server {
	h := hub.New(cfg.Stream.SubscriberBuffer)
	svc := record.NewService(record.NewStore(), h)

	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())

	s := &Server{
		config:  cfg,
		engine:  engine,
		hub:     h,
		service: svc,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	handler := NewHandler(s.service, s.hub)

	// 検査装置からのデータ受信
	s.engine.POST("/urine-data", handler.ReceiveData)
	s.engine.GET("/urine-data/:id", handler.GetSingleData)

	// APIエンドポイント
	s.engine.GET("/api/all-data", handler.GetAllData)
	s.engine.POST("/api/manual-input", handler.ManualInput)

	// リアルタイム配信
	s.engine.GET("/ws", handler.StreamWebSocket)
	s.engine.GET("/api/stream", handler.StreamEvents)

	// ヘルスチェックエンドポイント
	s.engine.GET("/health", handler.HealthCheck)

	// ダッシュボード（簡単な確認用）
	s.engine.GET("/", handler.Index)
}

// corsMiddleware は任意のオリジンからのアクセスを許可するミドルウェア
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		log.Printf("HTTPサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 接続中の購読者を解除
	s.hub.Close()

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
