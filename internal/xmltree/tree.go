// Package xmltree はXML文書を名前付きノードの木に正規化する。
//
// 名前空間の接頭辞は解決済みのURIに置き換えられ、要素のテキストとCDATAは区別なく
// 直下のテキストとして連結される。フィードのスキーマ側はこの木だけを参照し、
// XMLの構文を直接扱わない。
package xmltree

// Name は名前空間URIとローカル名の組。
type Name struct {
	Space string
	Local string
}

// Attr は要素の属性。
type Attr struct {
	Name  Name
	Value string
}

// Node は要素1つ分のノード。
// Textは直下のテキスト（CDATAを含む）を連結したもので、
// 子要素と空白だけを持つ要素ではnilになる。
type Node struct {
	Name     Name
	Attrs    []Attr
	Text     *string
	Children []*Node
}

// Attr は名前空間を持たない属性の値を返す。
func (n *Node) Attr(local string) (string, bool) {
	return n.AttrNS("", local)
}

// AttrNS は名前空間付きの属性の値を返す。
func (n *Node) AttrNS(space, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// TextValue は直下のテキストを返す。
func (n *Node) TextValue() (string, bool) {
	if n == nil || n.Text == nil {
		return "", false
	}
	return *n.Text, true
}

// Child は指定した名前の最初の子要素を返す。存在しない場合はnil。
func (n *Node) Child(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed は指定した名前の子要素を文書順で返す。
func (n *Node) ChildrenNamed(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// ChildText は指定した名前の最初の子要素のテキストを返す。
func (n *Node) ChildText(space, local string) (string, bool) {
	return n.Child(space, local).TextValue()
}

// OptionalAttr は属性の値をポインタで返す。属性がない場合はnil。
func (n *Node) OptionalAttr(local string) *string {
	s, ok := n.Attr(local)
	if !ok {
		return nil
	}
	return &s
}

// OptionalText は直下のテキストをポインタで返す。テキストがない場合はnil。
func (n *Node) OptionalText() *string {
	s, ok := n.TextValue()
	if !ok {
		return nil
	}
	return &s
}

// OptionalChildText は指定した名前の最初の子要素のテキストをポインタで返す。
func (n *Node) OptionalChildText(space, local string) *string {
	return n.Child(space, local).OptionalText()
}
