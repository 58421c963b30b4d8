// Package record は、尿検査データの受信・検証・保存を担うドメイン層です。
//
// このパッケージは、検査装置から送信される測定レコードの正規化、
// 連番IDの採番、スレッドセーフなインメモリ保存、および
// 保存成功時の通知発行を担当します。
//
// 責務:
//   - 入力データの検証（必須フィールド、日時フォーマット）
//   - 省略可能フィールドのデフォルト値補完
//   - 採番と書き込みを単一のクリティカルセクションで行う保存
//   - IDによる単一取得と全件スナップショット取得
//   - 保存成功ごとに1回のエンベロープ通知
//
// 仕様:
//   - IDは "1" から始まる10進文字列で、成功時のみ加算される
//   - 保存データはプロセス終了で消える（永続化なし）
//   - レコードは保存後に更新・削除されない
package record
