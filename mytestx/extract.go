package mytestx

// recordFields are the element/attribute names that mark a node as a
// question record. Any one of them is enough.
var recordFields = []string{"QuestionText", "Variants", "Type", "Score"}

// ExtractDocument walks the fixed MyTestX entry path (document root →
// Groups container → Group children) and extracts every group, concatenating
// the results in group order. A missing container yields no records; the
// caller treats that as "no questions found", not an error.
func ExtractDocument(root *Node) []*Node {
	if root == nil {
		return nil
	}
	container := root.Child("Groups")
	if container == nil {
		return nil
	}
	var records []*Node
	for _, group := range container.ChildrenNamed("Group") {
		records = append(records, Extract(group)...)
	}
	return records
}

// Extract collects question records from the subtree rooted at n in
// pre-order. A node qualifies as soon as it carries any record field;
// traversal still continues into its children, so a qualifying node nested
// inside another qualifying node is collected separately as well. No
// deduplication is performed.
func Extract(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if isRecord(cur) {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isRecord(n *Node) bool {
	for _, f := range recordFields {
		if n.HasField(f) {
			return true
		}
	}
	return false
}
