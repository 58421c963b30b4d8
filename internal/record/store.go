package record

import (
	"strconv"
	"sync"
)

// Store は連番IDをキーとするインメモリのレコード保管庫
// カウンタとマップは単一のミューテックスで保護され、
// 採番と書き込みは常に同一のクリティカルセクションで実行される
type Store struct {
	mu      sync.Mutex
	records map[string]Record
	nextID  int
}

// NewStore は空のStoreを作成する
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
		nextID:  1,
	}
}

// Insert はレコードに次のIDを採番して保存し、保存されたレコードを返す
// 2つの同時挿入が同じIDを受け取ることはない
func (s *Store) Insert(rec Record) Record {
	return s.InsertWith(func(int) Record { return rec })
}

// InsertWith はロック内でビルダーを呼び出してレコードを構築し、保存する
// ビルダーには採番前のカウンタ値（＝これから割り当てるID番号）が渡される
// レコードの内容がカウンタ値に依存する場合（サンプルデータ生成など）に使う
func (s *Store) InsertWith(build func(seq int) Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextID
	rec := build(seq)
	rec.ID = strconv.Itoa(seq)

	// ストアは自分用のコピーを保持し、呼び出し側とマップを共有しない
	s.records[rec.ID] = rec.Clone()
	s.nextID++

	return rec
}

// Get は指定されたIDのレコードのコピーを取得する
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.Clone(), true
}

// All は全レコードのスナップショットを ID -> Record のマップで返す
// 返されるマップと内部状態は共有されない
func (s *Store) All() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Record, len(s.records))
	for id, rec := range s.records {
		out[id] = rec.Clone()
	}
	return out
}

// Count は保存されているレコード数を返す
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
