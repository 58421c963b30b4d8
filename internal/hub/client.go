package hub

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"nyoken/internal/record"
)

const (
	// writeWait は1回の書き込みに許容する時間
	writeWait = 10 * time.Second

	// pongWait はPong応答を待つ時間
	pongWait = 60 * time.Second

	// pingPeriod はPing送信の間隔（pongWaitより短くする）
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize はクライアントから受け付ける最大メッセージサイズ
	maxMessageSize = 512
)

// upgrader はHTTP接続をWebSocketへアップグレードする
// 任意のオリジンからの接続を許可する
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsEvent はWebSocketで送信するイベントフレーム
type wsEvent struct {
	Event   string          `json:"event"`
	Payload record.Envelope `json:"payload"`
}

// ServeWS はHTTP接続をWebSocketへアップグレードし、購読を開始する
// 接続が切れるまでエンベロープを new_data イベントとして配信し続ける
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("WebSocketへのアップグレードに失敗: %w", err)
	}

	sub := h.Subscribe()
	log.Printf("購読者が接続しました: %s (現在 %d 接続)", sub.ID, h.Count())

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)

	return nil
}

// writePump はエンベロープとPingをWebSocketへ書き込む
// 購読チャンネルのクローズまたは書き込みエラーで終了する
func (h *Hub) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case env, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub側で購読が解除された
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(wsEvent{Event: EventNewData, Payload: env}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump はクライアントからの受信を監視し、切断を検知する
// 受信内容自体は使用しない
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.Unsubscribe(sub.ID)
		_ = conn.Close()
		log.Printf("購読者が切断しました: %s (現在 %d 接続)", sub.ID, h.Count())
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
