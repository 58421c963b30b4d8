package record

import "errors"

// 検証エラーの種別
// HTTP層では errors.Is で判別してステータスコードに変換する
var (
	// ErrMissingField は必須フィールド（results / abnormal_flags）の欠如
	ErrMissingField = errors.New("hasil atau flag abnormal tidak ada")

	// ErrInvalidDate は日時フォーマット不正（YYYY-MM-DD HH:MM 以外）
	ErrInvalidDate = errors.New("format tanggal tidak valid")
)
