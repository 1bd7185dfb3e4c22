package main

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testQuiz = `<?xml version="1.0" encoding="utf-8"?>
<MyTestX>
  <Groups>
    <Group>
      <Task Type="single" Score="1">
        <QuestionText><PlainText>Thu do cua Viet Nam?</PlainText></QuestionText>
        <Variants>
          <VariantText Correct="True"><PlainText>Ha Noi</PlainText></VariantText>
          <VariantText Correct="False"><PlainText>Da Nang</PlainText></VariantText>
        </Variants>
      </Task>
      <Task Type="single" Score="1">
        <QuestionText><PlainText>1 + 1 = ?</PlainText></QuestionText>
        <Variants>
          <VariantText Correct="True"><PlainText>2</PlainText></VariantText>
        </Variants>
      </Task>
    </Group>
  </Groups>
</MyTestX>`

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp()
	app.FileManager.settingsDir = t.TempDir()
	return app
}

func writeQuiz(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write quiz file: %v", err)
	}
	return path
}

func TestConvertProducesPDF(t *testing.T) {
	app := newTestApp(t)
	res := app.convert(writeQuiz(t, testQuiz))

	if res.Error != "" {
		t.Fatalf("conversion failed: %s", res.Error)
	}
	if res.FileName != "output.pdf" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", res.QuestionCount)
	}
	data, err := base64.StdEncoding.DecodeString(res.Data)
	if err != nil {
		t.Fatalf("result data is not base64: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatal("result data is not a PDF")
	}
}

func TestConvertNoQuestionsFound(t *testing.T) {
	app := newTestApp(t)
	res := app.convert(writeQuiz(t, `<MyTestX><Other/></MyTestX>`))

	if res.Error != msgNoQuestions {
		t.Fatalf("Error = %q, want %q", res.Error, msgNoQuestions)
	}
	if res.Data != "" {
		t.Error("no document may be produced when no questions were found")
	}
}

// Records exist but every one has empty question text: this is the distinct
// content-emptiness failure, not the "not found" one.
func TestConvertAllRecordsEmpty(t *testing.T) {
	doc := `<MyTestX><Groups><Group>
		<Task Score="1"><QuestionText><PlainText>   </PlainText></QuestionText></Task>
		<Task Score="1"/>
	</Group></Groups></MyTestX>`

	app := newTestApp(t)
	res := app.convert(writeQuiz(t, doc))

	if res.Error != msgNoContent {
		t.Fatalf("Error = %q, want %q", res.Error, msgNoContent)
	}
	if res.Error == msgNoQuestions {
		t.Fatal("emptiness failure must differ from the not-found message")
	}
	if res.Data != "" {
		t.Error("no downloadable output on content emptiness")
	}
}

func TestConvertMalformedXML(t *testing.T) {
	app := newTestApp(t)
	res := app.convert(writeQuiz(t, `<MyTestX><Groups>`))

	if !strings.HasPrefix(res.Error, "Lỗi khi xử lý") {
		t.Fatalf("Error = %q, want processing error", res.Error)
	}
}

func TestConvertMissingFontIsFatal(t *testing.T) {
	app := newTestApp(t)
	app.SettingsManager.Get().Export.FontPath = "/nonexistent/font.ttf"
	res := app.convert(writeQuiz(t, testQuiz))

	if res.Error != msgFontFailed {
		t.Fatalf("Error = %q, want %q", res.Error, msgFontFailed)
	}
	if res.Data != "" {
		t.Error("no document may be produced without the font")
	}
}

func TestConvertFileRejectsConcurrentRuns(t *testing.T) {
	app := newTestApp(t)
	app.busy.Store(true)
	res := app.ConvertFile(writeQuiz(t, testQuiz))

	if res.Error != msgBusy {
		t.Fatalf("Error = %q, want busy message", res.Error)
	}
}

func TestLayoutFromSettingsDefaults(t *testing.T) {
	layout := layoutFromSettings(ExportSettings{})
	if layout.QuestionSize == 0 || layout.QuestionWidthFactor == 0 {
		t.Error("zero settings must fall back to defaults")
	}

	layout = layoutFromSettings(ExportSettings{QuestionWidthFactor: 3.5})
	if layout.QuestionWidthFactor != 3.5 {
		t.Errorf("override ignored: %v", layout.QuestionWidthFactor)
	}
}
