package hub

import (
	"sync"

	"github.com/google/uuid"

	"nyoken/internal/record"
)

// EventNewData は新規レコード配信のイベント名
const EventNewData = "new_data"

// DefaultSubscriberBuffer は購読者チャンネルのデフォルトバッファ数
const DefaultSubscriberBuffer = 16

// Subscriber は1つの接続中クライアントを表す
type Subscriber struct {
	ID string                 // 購読者の一意識別子
	C  <-chan record.Envelope // エンベロープの受信チャンネル
}

// Hub は購読者の集合を管理し、エンベロープを配信する
// record.Notifier を実装する
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan record.Envelope
	buffer int
}

// New は新しいHubを作成する
// buffer は購読者ごとの受信バッファ数（0以下ならデフォルト値）
func New(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Hub{
		subs:   make(map[string]chan record.Envelope),
		buffer: buffer,
	}
}

// Subscribe は新しい購読者を登録する
// 登録以降に配信されたエンベロープのみ受信できる
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan record.Envelope, h.buffer)
	id := uuid.New().String()
	h.subs[id] = ch

	return &Subscriber{ID: id, C: ch}
}

// Unsubscribe は購読者を解除し、受信チャンネルをクローズする
// 未知のIDに対しては何もしない
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Notify はエンベロープを接続中の全購読者へ配信する
// 受信が追いつかない購読者への配信は破棄される（ブロックしない）
func (h *Hub) Notify(env record.Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- env:
		default:
			// バッファ超過分は破棄（at-most-once）
		}
	}
}

// Count は現在の購読者数を返す
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close は全購読者を解除する
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
