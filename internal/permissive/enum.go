package permissive

import "fmt"

// Enum は既知のリテラルに一致した名前付きバリアントか、一致しなかった元のテキスト（Other）を保持する。
type Enum[V comparable] struct {
	variant V
	text    string
	named   bool
}

// Variant は名前付きバリアントの場合に値とtrueを返す。
func (e Enum[V]) Variant() (V, bool) {
	return e.variant, e.named
}

// Other はどのリテラルにも一致しなかった場合に元のテキストとtrueを返す。
func (e Enum[V]) Other() (string, bool) {
	if e.named {
		return "", false
	}
	return e.text, true
}

// Is は値が指定したバリアントであればtrueを返す。
func (e Enum[V]) Is(v V) bool {
	return e.named && e.variant == v
}

// IsOther はOtherであればtrueを返す。
func (e Enum[V]) IsOther() bool {
	return !e.named
}

// String は名前付きバリアントなら正規のリテラル、Otherなら保持しているテキストをそのまま返す。
func (e Enum[V]) String() string {
	return e.text
}

// Literal はバリアントとそのリテラルの対応。
// パースはTextとの完全一致のみ。Displayが空でなければ表示はDisplayを使う。
type Literal[V comparable] struct {
	Variant V
	Text    string
	Display string
}

// EnumTable はリテラルからバリアントへの対応表。
// パッケージ初期化時に構築し、以降は読み取り専用として扱う。
type EnumTable[V comparable] struct {
	parse    map[string]V
	render   map[V]string
	variants []V
}

// NewEnumTable は対応表を構築する。
// リテラルやバリアントの重複はプログラムの誤りなのでpanicする。
func NewEnumTable[V comparable](literals ...Literal[V]) EnumTable[V] {
	t := EnumTable[V]{
		parse:  make(map[string]V, len(literals)),
		render: make(map[V]string, len(literals)),
	}
	for _, lit := range literals {
		if _, dup := t.render[lit.Variant]; dup {
			panic(fmt.Sprintf("permissive: duplicate enum variant %v", lit.Variant))
		}
		t.render[lit.Variant] = lit.Text
		if lit.Display != "" {
			t.render[lit.Variant] = lit.Display
		}
		t.variants = append(t.variants, lit.Variant)

		if _, dup := t.parse[lit.Text]; dup {
			panic(fmt.Sprintf("permissive: duplicate enum literal %q", lit.Text))
		}
		t.parse[lit.Text] = lit.Variant
	}
	return t
}

// Decode はテキストを完全一致（大文字小文字を区別）で対応表と照合する。
// 一致しない場合はテキストを変更せずにOtherとして保持する。
func (t EnumTable[V]) Decode(raw string) Enum[V] {
	if v, ok := t.parse[raw]; ok {
		return Enum[V]{variant: v, text: t.render[v], named: true}
	}
	return Enum[V]{text: raw}
}

// Variants は宣言順のバリアント一覧を返す。
func (t EnumTable[V]) Variants() []V {
	out := make([]V, len(t.variants))
	copy(out, t.variants)
	return out
}
