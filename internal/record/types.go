package record

// DateTimeLayout は測定日時のフォーマット（分精度、秒・タイムゾーンなし）
const DateTimeLayout = "2006-01-02 15:04"

// EnvelopeTypeNew は新規保存を表すエンベロープ種別
const EnvelopeTypeNew = "new"

// Record は1回分の尿検査測定レコードを表す
type Record struct {
	ID            string            `json:"id"`             // システムが採番する一意識別子
	DateTime      string            `json:"date_time"`      // 測定日時（YYYY-MM-DD HH:MM）
	SampleNo      string            `json:"sample_no"`      // 検体番号（省略時 "N/A"）
	PatientID     string            `json:"patient_id"`     // 患者ID（省略時 空文字）
	Results       map[string]string `json:"results"`        // 検査項目名 -> 結果文字列
	AbnormalFlags map[string]bool   `json:"abnormal_flags"` // 検査項目名 -> 異常フラグ
}

// Clone はマップを含めた深いコピーを返す
// ストア内部の状態が外部から書き換えられないようにするために使う
func (r Record) Clone() Record {
	out := r
	if r.Results != nil {
		out.Results = make(map[string]string, len(r.Results))
		for k, v := range r.Results {
			out.Results[k] = v
		}
	}
	if r.AbnormalFlags != nil {
		out.AbnormalFlags = make(map[string]bool, len(r.AbnormalFlags))
		for k, v := range r.AbnormalFlags {
			out.AbnormalFlags[k] = v
		}
	}
	return out
}

// RawRecord は検査装置から送信される検証前の入力を表す
// ポインタ型により「フィールドが無い」と「空値が明示された」を区別する
type RawRecord struct {
	DateTime      *string           `json:"date_time"`
	SampleNo      *string           `json:"sample_no"`
	PatientID     *string           `json:"patient_id"`
	Results       map[string]string `json:"results"`
	AbnormalFlags map[string]bool   `json:"abnormal_flags"`
}

// Envelope は保存成功時に購読者へ配信される通知ペイロード
type Envelope struct {
	ID   string `json:"id"`
	Data Record `json:"data"`
	Type string `json:"type"`
}

// Notifier はエンベロープの配信先を表すインターフェース
// 配信はファイアアンドフォーゲットで、呼び出し側をブロックしてはならない
type Notifier interface {
	// Notify はエンベロープを現在接続中の全購読者へ配信する
	Notify(env Envelope)
}
