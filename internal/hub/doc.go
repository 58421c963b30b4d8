// Package hub は、リアルタイム配信の購読者管理と配信を担当します。
//
// このパッケージは、WebSocket/SSEで接続しているクライアントへ
// 新規レコードのエンベロープをプッシュ配信します。
//
// 責務:
//   - 購読者の登録と解除
//   - 接続中の全購読者へのエンベロープ配信
//   - WebSocket接続の確立と読み書きポンプの管理
//
// 仕様:
//   - 配信は購読者ごとに最大1回（バッファ超過時は破棄、再送なし）
//   - 配信は取り込み処理をブロックしない
//   - 接続後に発生したイベントのみ受信できる（リプレイなし）
//   - WebSocketはgorilla/websocketを使用
//   - クロスオリジン接続を任意のオリジンから許可する
package hub
