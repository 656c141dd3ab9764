// Package permissive はフィードのフィールド値を寛容にデコードする仕組みを提供する。
//
// すべてのデコーダは失敗しない。期待する形式に一致した値は Valid として型付きで保持し、
// 一致しなかった値は元のテキストを一切変更せずにフォールバックとして保持する。
// 呼び出し側はフィールドごとに「仕様どおりの値」か「そのまま受け入れた値」かを区別できる。
//
// デコーダは入力テキストのみに依存する純粋関数であり、複数のgoroutineから同時に呼び出してよい。
package permissive
