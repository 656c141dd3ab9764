package permissive

import (
	"regexp"
	"sync"
)

// identifierPattern は8-4-4-4-12桁の16進数（大文字小文字を問わない）に文字列全体で一致する。
// 初回利用時に1度だけコンパイルし、以降は読み取り専用で共有する。
// コンパイル失敗はプログラムの誤りなのでpanicさせる。
var identifierPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`\A[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\z`)
})

// Identifier は形式検証済みの識別子（Valid）か、一致しなかった元のテキスト（Other）を保持する。
// どちらの場合もテキストは正規化しない。
type Identifier struct {
	text  string
	valid bool
}

// DecodeIdentifier はテキストが正規の識別子形式かを検証する。
// 前後の空白も不一致として扱う。
func DecodeIdentifier(raw string) Identifier {
	return Identifier{text: raw, valid: identifierPattern().MatchString(raw)}
}

// IsValid は識別子が形式に一致していればtrueを返す。
func (id Identifier) IsValid() bool {
	return id.valid
}

// Valid は形式に一致した場合にテキストとtrueを返す。
func (id Identifier) Valid() (string, bool) {
	if !id.valid {
		return "", false
	}
	return id.text, true
}

// Other は形式に一致しなかった場合に元のテキストとtrueを返す。
func (id Identifier) Other() (string, bool) {
	if id.valid {
		return "", false
	}
	return id.text, true
}

// String は保持しているテキストをそのまま返す。
func (id Identifier) String() string {
	return id.text
}
