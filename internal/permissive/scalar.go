package permissive

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar は厳密なパースに成功した値（Valid）か、元のテキスト（Fallback）のどちらかを保持する。
// ゼロ値は空文字列のFallbackとして扱われる。
type Scalar[T any] struct {
	value T
	raw   string
	valid bool
}

// Valid は厳密なパースに成功した値からScalarを生成する。
func Valid[T any](v T) Scalar[T] {
	return Scalar[T]{value: v, valid: true}
}

// Fallback は期待する形式に一致しなかったテキストをそのまま保持するScalarを生成する。
func Fallback[T any](raw string) Scalar[T] {
	return Scalar[T]{raw: raw}
}

// Get はValidの場合に値とtrueを返す。
func (s Scalar[T]) Get() (T, bool) {
	return s.value, s.valid
}

// Raw はFallbackの場合に元のテキストとtrueを返す。
func (s Scalar[T]) Raw() (string, bool) {
	return s.raw, !s.valid
}

// IsValid は値が厳密なパースに成功していればtrueを返す。
func (s Scalar[T]) IsValid() bool {
	return s.valid
}

// String はValidなら値の文字列表現、Fallbackなら元のテキストを返す。
func (s Scalar[T]) String() string {
	if !s.valid {
		return s.raw
	}
	return fmt.Sprint(s.value)
}

// DecodeBool は "true" または "false" のみをValidとして受け付ける。
// 大文字小文字は区別し、"TRUE" や "1" はFallbackになる。
func DecodeBool(raw string) Scalar[bool] {
	switch raw {
	case "true":
		return Valid(true)
	case "false":
		return Valid(false)
	}
	return Fallback[bool](raw)
}

// DecodeBoolYN は podcast:locked 等で使われる yes/no 形式をデコードする。
//
// 互換性のため "yes" も false として扱う（上流の実装と同じ対応表）。
// 意味を変える場合は利用側の合意を得てから変更すること。
func DecodeBoolYN(raw string) Scalar[bool] {
	switch raw {
	case "no":
		return Valid(false)
	case "yes":
		return Valid(false)
	}
	return Fallback[bool](raw)
}

// DecodeU64 は10進の符号なし整数をデコードする。
func DecodeU64(raw string) Scalar[uint64] {
	if v, ok := parseUint(raw); ok {
		return Valid(v)
	}
	return Fallback[uint64](raw)
}

// DecodeFloat は32ビット浮動小数点数をデコードする。符号の制約はない。
func DecodeFloat(raw string) Scalar[float32] {
	v, ok := parseFloat(raw, 32)
	if !ok {
		return Fallback[float32](raw)
	}
	return Valid(float32(v))
}

// DecodeNonNegF64 は0以上の浮動小数点数をデコードする。
// パースできても負の値はFallbackになる。
func DecodeNonNegF64(raw string) Scalar[float64] {
	v, ok := parseFloat(raw, 64)
	if !ok || v < 0 {
		return Fallback[float64](raw)
	}
	return Valid(v)
}

// NumberKind はNumberが保持する数値の種類。
type NumberKind int

const (
	// NumberU64 は符号なし整数。
	NumberU64 NumberKind = iota
	// NumberF64 は浮動小数点数。
	NumberF64
)

// Number はDecodeNonNegNumberの結果。整数として読めた場合はU64、それ以外はF64を使う。
type Number struct {
	Kind NumberKind
	U64  uint64
	F64  float64
}

// Float64 は種類に関係なく数値をfloat64で返す。
func (n Number) Float64() float64 {
	if n.Kind == NumberU64 {
		return float64(n.U64)
	}
	return n.F64
}

// String は数値の文字列表現を返す。
func (n Number) String() string {
	if n.Kind == NumberU64 {
		return strconv.FormatUint(n.U64, 10)
	}
	return strconv.FormatFloat(n.F64, 'g', -1, 64)
}

// DecodeNonNegNumber は整数としてのパースを先に試し、失敗した場合は浮動小数点数として読む。
// 負の浮動小数点数はFallbackになる。
func DecodeNonNegNumber(raw string) Scalar[Number] {
	if v, ok := parseUint(raw); ok {
		return Valid(Number{Kind: NumberU64, U64: v})
	}
	v, ok := parseFloat(raw, 64)
	if !ok || v < 0 {
		return Fallback[Number](raw)
	}
	return Valid(Number{Kind: NumberF64, F64: v})
}

// Option はrawがnilでなければdecodeした結果をポインタで返す。
func Option[T any](raw *string, decode func(string) Scalar[T]) *Scalar[T] {
	if raw == nil {
		return nil
	}
	s := decode(*raw)
	return &s
}

func parseUint(s string) (uint64, bool) {
	digits := strings.TrimPrefix(s, "+")
	if digits == "" || !isDigits(digits) {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloat は10進表記（符号、小数部、指数部）と inf / infinity / nan のみを受け付ける。
// 16進表記や桁区切りの "_" はstrconvが受け付けても拒否する。
// 範囲外の値は±Infとして扱う。符号付きのnanもNaNとする。
func parseFloat(s string, bitSize int) (float64, bool) {
	if !isDecimalFloat(s) {
		return 0, false
	}
	if strings.EqualFold(strings.TrimLeft(s, "+-"), "nan") {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, bitSize)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func isDecimalFloat(s string) bool {
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	switch strings.ToLower(body) {
	case "inf", "infinity", "nan":
		return true
	}

	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(body), "e")
	if hasExp {
		exp := exponent
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		if exp == "" || !isDigits(exp) {
			return false
		}
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if intPart == "" && fracPart == "" {
		return false
	}
	return (intPart == "" || isDigits(intPart)) && (fracPart == "" || isDigits(fracPart))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
