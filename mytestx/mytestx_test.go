package mytestx

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="utf-8"?>
<MyTestX>
  <Groups>
    <Group Name="Phần 1">
      <Task Type="single" Score="1">
        <QuestionText>
          <PlainText>Thủ đô của Việt Nam là gì?</PlainText>
        </QuestionText>
        <Variants>
          <VariantText Correct="True"><PlainText>Hà Nội</PlainText></VariantText>
          <VariantText Correct="False"><PlainText>Đà Nẵng</PlainText></VariantText>
        </Variants>
      </Task>
      <Task Type="single" Score="1">
        <QuestionText>
          <PlainText>1 + 1 = ?</PlainText>
        </QuestionText>
        <Variants>
          <VariantText Correct="True"><PlainText>2</PlainText></VariantText>
        </Variants>
      </Task>
    </Group>
    <Group Name="Phần 2">
      <Task Score="2">
        <QuestionText>
          <PlainText>Câu hỏi nhóm hai</PlainText>
        </QuestionText>
      </Task>
    </Group>
  </Groups>
</MyTestX>`

func parseDoc(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root
}

func TestExtractDocument(t *testing.T) {
	root := parseDoc(t, sampleDoc)
	records := ExtractDocument(root)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Group order, then in-group document order.
	want := []string{"Thủ đô của Việt Nam là gì?", "1 + 1 = ?", "Câu hỏi nhóm hai"}
	for i, rec := range records {
		if got := strings.TrimSpace(PlainText(rec)); got != want[i] {
			t.Errorf("record %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestExtractDocumentMissingContainer(t *testing.T) {
	root := parseDoc(t, `<MyTestX><Other><Task Score="1"/></Other></MyTestX>`)
	if records := ExtractDocument(root); len(records) != 0 {
		t.Fatalf("expected no records without a Groups container, got %d", len(records))
	}
}

func TestExtractQualifiesOnAnyField(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want int
	}{
		{"type attribute only", `<Group><Task Type="single"/></Group>`, 1},
		{"score attribute only", `<Group><Task Score=""/></Group>`, 1},
		{"variants element only", `<Group><Task><Variants/></Task></Group>`, 1},
		{"question text only", `<Group><Task><QuestionText/></Task></Group>`, 1},
		{"nothing qualifying", `<Group><Task><Other/></Task></Group>`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := parseDoc(t, tc.doc)
			if got := len(Extract(root)); got != tc.want {
				t.Errorf("got %d records, want %d", got, tc.want)
			}
		})
	}
}

// A qualifying node nested inside another qualifying node is collected at
// both points of discovery. This pins the over-collection behavior so any
// future change to it is deliberate.
func TestExtractCollectsNestedRecords(t *testing.T) {
	doc := `<Group>
		<Task Score="1">
			<QuestionText><PlainText>ngoài</PlainText></QuestionText>
			<Sub>
				<Task Score="1">
					<QuestionText><PlainText>trong</PlainText></QuestionText>
				</Task>
			</Sub>
		</Task>
	</Group>`
	root := parseDoc(t, doc)
	records := Extract(root)
	if len(records) != 2 {
		t.Fatalf("expected outer and nested record, got %d", len(records))
	}
	if strings.TrimSpace(PlainText(records[0])) != "ngoài" {
		t.Errorf("pre-order violated: first record is %q", PlainText(records[0]))
	}
	if strings.TrimSpace(PlainText(records[1])) != "trong" {
		t.Errorf("nested record not collected: got %q", PlainText(records[1]))
	}
}

func TestVariantsSingleInstance(t *testing.T) {
	doc := `<Task><Variants><VariantText Correct="True"><PlainText>một</PlainText></VariantText></Variants></Task>`
	root := parseDoc(t, doc)
	variants := Variants(root)
	if len(variants) != 1 {
		t.Fatalf("single VariantText must coerce to a one-element list, got %d", len(variants))
	}
	if OptionText(variants[0]) != "một" {
		t.Errorf("OptionText = %q", OptionText(variants[0]))
	}
}

func TestIsCorrect(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"True", true},
		{"true", false},
		{"TRUE", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}
	for _, tc := range cases {
		n := &Node{Name: "VariantText", Attrs: []Attr{{Name: "Correct", Value: tc.value}}}
		if got := IsCorrect(n); got != tc.want {
			t.Errorf("IsCorrect(attr %q) = %v, want %v", tc.value, got, tc.want)
		}
	}

	// Element-style flag.
	elem := &Node{Name: "VariantText", Children: []*Node{{Name: "Correct", Text: " True "}}}
	if !IsCorrect(elem) {
		t.Error("element-style Correct=True not recognized")
	}
	none := &Node{Name: "VariantText"}
	if IsCorrect(none) {
		t.Error("option without a Correct field must not be correct")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  xin   chào  ", "xin chào"},
		{"a &lt;b&gt; c &amp; d", "a b c & d"},
		{"so <sánh> x", "so sánh x"},
		{"Câu hỏi (2đ) khó", "Câu hỏi khó"},
		{"Câu hỏi (1,5 điểm) khó", "Câu hỏi khó"},
		{"(1) phần một (2) phần hai", "(1) phần một (2) phần hai"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  xin   chào  ",
		"a &lt;b&gt; c &amp; d",
		"Câu hỏi (2đ) khó <br>",
		"(1) một (2) hai",
		"plain text",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestSplitParts(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"(1) only part", []string{"(1) only part"}},
		{"(1) First part (2) Second part", []string{"(1) First part", "(2) Second part"}},
		{"intro (1) một (2) hai", []string{"intro", "(1) một", "(2) hai"}},
		{"(1. dạng chấm (2. nữa", []string{"(1. dạng chấm", "(2. nữa"}},
		{"no markers at all", []string{"no markers at all"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := SplitParts(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("SplitParts(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("SplitParts(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestHasPartMarker(t *testing.T) {
	if !HasPartMarker("(1) nội dung") {
		t.Error("leading marker not detected")
	}
	if HasPartMarker("nội dung (1) sau") {
		t.Error("non-leading marker must not count")
	}
}
