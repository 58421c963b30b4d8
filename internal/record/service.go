package record

import (
	"fmt"
	"time"
)

// Service は検証・採番・保存・通知のパイプラインを束ねる
type Service struct {
	store    *Store
	notifier Notifier

	// now は現在時刻の取得関数（テストで固定するため差し替え可能）
	now func() time.Time
}

// NewService は新しいServiceを作成する
func NewService(store *Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Ingest は入力を検証し、成功時は採番・保存して購読者へ通知する
// 検証に失敗した場合、IDは消費されず、保存も通知も行われない
func (s *Service) Ingest(raw RawRecord) (Record, error) {
	rec, err := Validate(raw, s.now())
	if err != nil {
		return Record{}, err
	}

	stored := s.store.Insert(rec)
	s.notify(stored)

	return stored, nil
}

// IngestSample は検査装置なしの動作確認用に固定内容のサンプルレコードを保存する
// 検証は通らず、保存と通知は通常の取り込みと同一に扱われる
func (s *Service) IngestSample() Record {
	dateTime := s.now().Format(DateTimeLayout)

	stored := s.store.InsertWith(func(seq int) Record {
		return Record{
			DateTime:  dateTime,
			SampleNo:  fmt.Sprintf("TEST-%03d", seq),
			PatientID: "SAMPLE-DATA",
			Results: map[string]string{
				"ubg": "Normal 3.4umol/L",
				"bil": "Neg",
				"ket": "Neg",
				"bld": "1+ Ca25 Ery/uL",
				"pro": "Trace",
				"nit": "Pos",
				"leu": "Neg",
				"glu": "Neg",
				"sg":  ">=1.030",
				"ph":  "5.5",
			},
			AbnormalFlags: map[string]bool{
				"bld": true,
				"pro": true,
				"nit": true,
				"leu": false,
				"glu": false,
			},
		}
	})
	s.notify(stored)

	return stored
}

// Get は指定されたIDのレコードを取得する
func (s *Service) Get(id string) (Record, bool) {
	return s.store.Get(id)
}

// All は全レコードのスナップショットと件数を返す
func (s *Service) All() (int, map[string]Record) {
	data := s.store.All()
	return len(data), data
}

// notify は保存済みレコードのエンベロープを配信する
func (s *Service) notify(rec Record) {
	s.notifier.Notify(Envelope{
		ID:   rec.ID,
		Data: rec,
		Type: EnvelopeTypeNew,
	})
}
