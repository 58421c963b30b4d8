package record

import (
	"errors"
	"testing"
	"time"
)

// strPtr は文字列のポインタを返すテスト用ヘルパー
func strPtr(s string) *string {
	return &s
}

// TestValidate は入力検証と正規化をテストする
func TestValidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)

	testCases := []struct {
		name    string
		raw     RawRecord
		wantErr error
	}{
		{
			name: "必須フィールドが揃っている",
			raw: RawRecord{
				Results:       map[string]string{"ubg": "Normal 3.4umol/L"},
				AbnormalFlags: map[string]bool{"ubg": false},
			},
		},
		{
			name: "resultsが無い",
			raw: RawRecord{
				AbnormalFlags: map[string]bool{"ubg": false},
			},
			wantErr: ErrMissingField,
		},
		{
			name: "abnormal_flagsが無い",
			raw: RawRecord{
				Results: map[string]string{"ubg": "Neg"},
			},
			wantErr: ErrMissingField,
		},
		{
			name:    "両方無い",
			raw:     RawRecord{},
			wantErr: ErrMissingField,
		},
		{
			name: "日時フォーマット不正",
			raw: RawRecord{
				DateTime:      strPtr("2024-13-40 99:99"),
				Results:       map[string]string{"a": "x"},
				AbnormalFlags: map[string]bool{"a": true},
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "秒を含む日時は不正",
			raw: RawRecord{
				DateTime:      strPtr("2024-06-01 09:30:00"),
				Results:       map[string]string{"a": "x"},
				AbnormalFlags: map[string]bool{"a": true},
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "正しい日時はそのまま保持",
			raw: RawRecord{
				DateTime:      strPtr("2024-01-02 03:04"),
				Results:       map[string]string{"a": "x"},
				AbnormalFlags: map[string]bool{"a": true},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Validate(tc.raw, now)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}

			// IDはまだ採番されない
			if rec.ID != "" {
				t.Errorf("expected empty ID, got %q", rec.ID)
			}

			if tc.raw.DateTime != nil && rec.DateTime != *tc.raw.DateTime {
				t.Errorf("date_time mismatch: got %q, want %q", rec.DateTime, *tc.raw.DateTime)
			}
		})
	}
}

// TestValidateDefaults は省略時のデフォルト値補完をテストする
func TestValidateDefaults(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)

	rec, err := Validate(RawRecord{
		Results:       map[string]string{"a": "x"},
		AbnormalFlags: map[string]bool{"a": true},
	}, now)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// 日時は現在時刻を分精度でフォーマット
	if rec.DateTime != "2024-06-01 09:30" {
		t.Errorf("expected date_time 2024-06-01 09:30, got %q", rec.DateTime)
	}

	// 補完されたフォーマットは再解析できる
	if _, err := time.Parse(DateTimeLayout, rec.DateTime); err != nil {
		t.Errorf("defaulted date_time does not parse: %v", err)
	}

	if rec.SampleNo != "N/A" {
		t.Errorf("expected sample_no N/A, got %q", rec.SampleNo)
	}
	if rec.PatientID != "" {
		t.Errorf("expected empty patient_id, got %q", rec.PatientID)
	}
}

// TestValidateExplicitEmpty は明示された空値が上書きされないことをテストする
func TestValidateExplicitEmpty(t *testing.T) {
	now := time.Now()

	rec, err := Validate(RawRecord{
		SampleNo:      strPtr(""),
		PatientID:     strPtr("P-001"),
		Results:       map[string]string{"a": "x"},
		AbnormalFlags: map[string]bool{"a": true},
	}, now)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// 空文字が明示された場合は "N/A" に補完しない
	if rec.SampleNo != "" {
		t.Errorf("expected explicit empty sample_no to be kept, got %q", rec.SampleNo)
	}
	if rec.PatientID != "P-001" {
		t.Errorf("expected patient_id P-001, got %q", rec.PatientID)
	}
}
