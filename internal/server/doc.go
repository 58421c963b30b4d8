// Package server は、HTTPサーバーとAPIエンドポイントを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// 測定データの受信・取得API、リアルタイム配信エンドポイントを担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 測定データの受信（POST /urine-data）と取得API
//   - WebSocket/SSE配信エンドポイントの提供
//   - ダッシュボードページの配信
//   - エラーの共通レスポンス形式への変換
//
// 仕様:
//   - ルーティングはgin-gonic/ginを使用
//   - 全レスポンスはstatusフィールドを持つJSON
//   - 任意のオリジンからのアクセスを許可
//   - グレースフルシャットダウンに対応
//   - 複数クライアントの同時接続をサポート
package server
