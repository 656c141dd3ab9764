package permissive

import "testing"

type testColor int

const (
	colorRed testColor = iota + 1
	colorDarkBlue
)

var testColors = NewEnumTable(
	Literal[testColor]{Variant: colorRed, Text: "red"},
	Literal[testColor]{Variant: colorDarkBlue, Text: "dark-blue"},
)

var testShades = NewEnumTable(
	Literal[testColor]{Variant: colorDarkBlue, Text: "DarkBlue", Display: "darkblue"},
)

func TestEnumTable_DecodeNamed(t *testing.T) {
	e := testColors.Decode("dark-blue")
	v, ok := e.Variant()
	if !ok || v != colorDarkBlue {
		t.Fatalf("Decode(dark-blue) = (%v, %v), want (colorDarkBlue, true)", v, ok)
	}
	if e.IsOther() {
		t.Error("名前付きバリアントは Other であってはならない")
	}
	if got := e.String(); got != "dark-blue" {
		t.Errorf("String() = %q, want %q", got, "dark-blue")
	}
}

// TestEnumTable_Display はパースがTextのみに一致し、表示はDisplayになることを検証する。
func TestEnumTable_Display(t *testing.T) {
	e := testShades.Decode("DarkBlue")
	if !e.Is(colorDarkBlue) {
		t.Fatal("DarkBlue は colorDarkBlue に一致するべき")
	}
	if got := e.String(); got != "darkblue" {
		t.Errorf("String() = %q, want %q", got, "darkblue")
	}

	lower := testShades.Decode("darkblue")
	if !lower.IsOther() {
		t.Fatal("表示形式の darkblue はパースでは Other になるべき")
	}
	if got := lower.String(); got != "darkblue" {
		t.Errorf("Other の String() = %q, want %q", got, "darkblue")
	}
}

func TestEnumTable_CaseSensitive(t *testing.T) {
	e := testColors.Decode("Red")
	if !e.IsOther() {
		t.Fatal("Red は Other になるべき")
	}
	if raw, ok := e.Other(); !ok || raw != "Red" {
		t.Errorf("Other() = (%q, %v), want (%q, true)", raw, ok, "Red")
	}
	if got := e.String(); got != "Red" {
		t.Errorf("String() = %q, want %q", got, "Red")
	}
}

// TestEnumTable_RoundTrip は全ての名前付きバリアントが表示→パースで元に戻ることを検証する。
func TestEnumTable_RoundTrip(t *testing.T) {
	for _, v := range testColors.Variants() {
		text := testColors.render[v]
		back := testColors.Decode(text)
		if !back.Is(v) || back.String() != text {
			t.Errorf("バリアント %v の往復変換に失敗: %q -> %v", v, text, back)
		}
	}
}

func TestNewEnumTable_DuplicateLiteralPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("重複リテラルは panic するべき")
		}
	}()
	NewEnumTable(
		Literal[testColor]{Variant: colorRed, Text: "red"},
		Literal[testColor]{Variant: colorDarkBlue, Text: "red"},
	)
}
