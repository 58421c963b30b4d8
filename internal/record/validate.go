package record

import (
	"fmt"
	"time"
)

// Validate は検証前の入力を検証し、正規化されたレコードを返す
// 副作用はなく、IDはまだ採番されない
//
// 検証ルール:
//   - results / abnormal_flags が無い場合は ErrMissingField
//   - date_time が無い場合は now を分精度でフォーマットして補完
//   - date_time がある場合は DateTimeLayout で厳密に解析できなければ ErrInvalidDate
//   - sample_no が無い場合は "N/A"、patient_id が無い場合は空文字を補完
//     （空文字が明示された場合はそのまま保持する）
func Validate(raw RawRecord, now time.Time) (Record, error) {
	if raw.Results == nil || raw.AbnormalFlags == nil {
		return Record{}, ErrMissingField
	}

	rec := Record{
		SampleNo:      "N/A",
		Results:       raw.Results,
		AbnormalFlags: raw.AbnormalFlags,
	}

	if raw.SampleNo != nil {
		rec.SampleNo = *raw.SampleNo
	}
	if raw.PatientID != nil {
		rec.PatientID = *raw.PatientID
	}

	if raw.DateTime == nil {
		rec.DateTime = now.Format(DateTimeLayout)
	} else {
		if _, err := time.Parse(DateTimeLayout, *raw.DateTime); err != nil {
			return Record{}, fmt.Errorf("%w: %q", ErrInvalidDate, *raw.DateTime)
		}
		rec.DateTime = *raw.DateTime
	}

	return rec, nil
}
