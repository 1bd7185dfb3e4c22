package mytestx

import "strings"

// correctLiteral is the only value that marks an answer option correct.
// Other spellings ("true", "TRUE", "1", "yes") are deliberately rejected.
const correctLiteral = "True"

// PlainText returns a record's question text from QuestionText/PlainText,
// or "" when either element is absent.
func PlainText(n *Node) string {
	if qt := n.Child("QuestionText"); qt != nil {
		if pt := qt.Child("PlainText"); pt != nil {
			return pt.Text
		}
	}
	return ""
}

// Variants returns a record's answer option nodes from Variants/VariantText
// in document order. A single instance comes back as a one-element slice.
func Variants(n *Node) []*Node {
	v := n.Child("Variants")
	if v == nil {
		return nil
	}
	return v.ChildrenNamed("VariantText")
}

// OptionText returns an answer option's text, preferring a PlainText child
// over the element's own character data.
func OptionText(n *Node) string {
	if pt := n.Child("PlainText"); pt != nil {
		return pt.Text
	}
	return n.Text
}

// IsCorrect reports whether an answer option is flagged correct. The flag
// may live in a Correct attribute or a Correct child element.
func IsCorrect(n *Node) bool {
	if v, ok := n.AttrValue("Correct"); ok {
		return v == correctLiteral
	}
	if c := n.Child("Correct"); c != nil {
		return strings.TrimSpace(c.Text) == correctLiteral
	}
	return false
}
