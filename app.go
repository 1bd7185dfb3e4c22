package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"QuizPDF/mytestx"
	"QuizPDF/pdfexport"
)

// outputFileName is the fixed name of every converted document.
const outputFileName = "output.pdf"

// User-visible messages. The extractor-level "not found" case and the
// content-emptiness case are deliberately distinct strings.
const (
	msgNoQuestions = "Không tìm thấy câu hỏi nào trong tệp này"
	msgNoContent   = "Tệp không chứa nội dung câu hỏi nào dùng được"
	msgFontFailed  = "Không thể nạp phông chữ để tạo PDF"
	msgBusy        = "Đang xử lý một tệp khác, vui lòng đợi"

	msgBuildErrorFmt   = "Lỗi khi tạo tài liệu: %v"
	msgProcessErrorFmt = "Lỗi khi xử lý: %v"
)

// App struct
type App struct {
	ctx             context.Context
	FileManager     *FileManager
	SettingsManager *SettingsManager
	EventBus        *EventBus
	History         *HistoryDB

	log  *logrus.Logger
	busy atomic.Bool
}

// ConvertResult is handed to the frontend after a conversion attempt. On
// success Data carries the PDF for the preview frame and the download link;
// on failure only Error is set, as the single displayed string.
type ConvertResult struct {
	FileName      string           `json:"fileName"`
	Data          string           `json:"data,omitempty"` // base64 PDF
	QuestionCount int              `json:"questionCount"`
	PageCount     int              `json:"pageCount"`
	Skipped       []pdfexport.Skip `json:"skipped,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// NewApp creates a new App application struct
func NewApp() *App {
	app := &App{log: logrus.New()}

	// Initialize modules
	app.EventBus = NewEventBus()
	app.SettingsManager = NewSettingsManager()
	app.FileManager = NewFileManager(app)

	return app
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.SettingsManager.Load(); err != nil {
		a.log.WithError(err).Warn("failed to load settings")
	}

	a.FileManager.Startup()

	db, err := NewHistoryDB()
	if err != nil {
		a.log.WithError(err).Warn("conversion history unavailable")
	} else {
		a.History = db
	}

	a.EventBus.Publish(EventAppStartup, nil)
}

// shutdown is called when the app closes.
func (a *App) shutdown(ctx context.Context) {
	if a.History != nil {
		a.History.Close()
	}
}

// OpenQuizFile shows the open dialog and converts the selected file. A nil
// result means the user cancelled.
func (a *App) OpenQuizFile() (*ConvertResult, error) {
	filePath, err := a.FileManager.OpenFileDialog()
	if err != nil {
		return nil, err
	}
	if filePath == "" {
		return nil, nil
	}
	return a.ConvertFile(filePath), nil
}

// ConvertFile runs the whole pipeline for one quiz file. Only one conversion
// runs at a time; there is no cancellation mid-conversion. Every failure is
// caught here and mapped to a single localized string in the result.
func (a *App) ConvertFile(filePath string) *ConvertResult {
	if !a.busy.CompareAndSwap(false, true) {
		return &ConvertResult{Error: msgBusy}
	}
	defer a.busy.Store(false)

	a.EventBus.Publish(EventConversionStart, ConversionEventData{SourcePath: filePath})

	res := a.convert(filePath)
	a.recordHistory(filePath, res)

	if res.Error != "" {
		a.log.WithField("file", filePath).Warn(res.Error)
		a.EventBus.Publish(EventConversionError, ConversionEventData{SourcePath: filePath, Error: res.Error})
	} else {
		a.EventBus.Publish(EventConversionDone, ConversionEventData{
			SourcePath:    filePath,
			QuestionCount: res.QuestionCount,
			PageCount:     res.PageCount,
		})
	}
	return res
}

// convert is the sequential pipeline: read → parse → extract → layout →
// serialize.
func (a *App) convert(filePath string) *ConvertResult {
	fail := func(msg string) *ConvertResult {
		return &ConvertResult{FileName: outputFileName, Error: msg}
	}

	fileInfo, content, err := a.FileManager.ReadFile(filePath)
	if err != nil {
		return fail(fmt.Sprintf(msgProcessErrorFmt, err))
	}
	a.EventBus.Publish(EventFileOpen, FileEventData{FileInfo: fileInfo})

	root, err := mytestx.Parse(strings.NewReader(content))
	if err != nil {
		return fail(fmt.Sprintf(msgProcessErrorFmt, err))
	}

	records := mytestx.ExtractDocument(root)
	if len(records) == 0 {
		// Soft input-format failure; the layout engine is never invoked.
		return fail(msgNoQuestions)
	}

	export := a.SettingsManager.Get().Export
	doc, err := pdfexport.NewDocument(export.FontPath)
	if err != nil {
		a.log.WithError(err).Error("font resource failure")
		return fail(msgFontFailed)
	}

	renderer := pdfexport.NewRenderer(layoutFromSettings(export))
	renderer.SetLogger(a.log)
	report, err := renderer.Render(records, doc)
	if errors.Is(err, pdfexport.ErrNoRenderable) {
		return fail(msgNoContent)
	}
	if err != nil {
		return fail(fmt.Sprintf(msgBuildErrorFmt, err))
	}

	data, err := doc.Bytes()
	if err != nil {
		return fail(fmt.Sprintf(msgBuildErrorFmt, err))
	}

	return &ConvertResult{
		FileName:      outputFileName,
		Data:          base64.StdEncoding.EncodeToString(data),
		QuestionCount: report.Rendered,
		PageCount:     report.Pages,
		Skipped:       report.Skips,
	}
}

// recordHistory stores the attempt; history being unavailable never affects
// the conversion result.
func (a *App) recordHistory(filePath string, res *ConvertResult) {
	if a.History == nil {
		return
	}
	status := "ok"
	if res.Error != "" {
		status = "error"
	}
	c := Conversion{
		SourcePath:    filePath,
		SourceName:    filepath.Base(filePath),
		QuestionCount: res.QuestionCount,
		PageCount:     res.PageCount,
		Status:        status,
		Error:         res.Error,
	}
	if _, err := a.History.RecordConversion(c, res.Skipped); err != nil {
		a.log.WithError(err).Warn("failed to record conversion history")
	}
}

// SavePDF shows the save dialog and writes the converted document. An empty
// path result means the user cancelled.
func (a *App) SavePDF(dataBase64 string) (*FileInfo, error) {
	data, err := base64.StdEncoding.DecodeString(dataBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid document data: %w", err)
	}

	filePath, err := a.FileManager.SaveFileDialog(outputFileName)
	if err != nil {
		return nil, err
	}
	if filePath == "" {
		return nil, nil
	}

	fileInfo, err := a.FileManager.WritePDF(filePath, data)
	if err != nil {
		return nil, err
	}

	a.EventBus.Publish(EventPDFSaved, FileEventData{FileInfo: fileInfo})
	return fileInfo, nil
}

// ConvertFileViaChrome runs the alternate export path: the quiz is rendered
// to HTML and printed to PDF through headless Chrome. Requires a local
// Chrome installation.
func (a *App) ConvertFileViaChrome(filePath string) *ConvertResult {
	if !a.busy.CompareAndSwap(false, true) {
		return &ConvertResult{Error: msgBusy}
	}
	defer a.busy.Store(false)

	fail := func(msg string) *ConvertResult {
		return &ConvertResult{FileName: outputFileName, Error: msg}
	}

	_, content, err := a.FileManager.ReadFile(filePath)
	if err != nil {
		return fail(fmt.Sprintf(msgProcessErrorFmt, err))
	}
	root, err := mytestx.Parse(strings.NewReader(content))
	if err != nil {
		return fail(fmt.Sprintf(msgProcessErrorFmt, err))
	}
	records := mytestx.ExtractDocument(root)
	if len(records) == 0 {
		return fail(msgNoQuestions)
	}

	data, err := pdfexport.NewChromeRenderer().PrintToPDF(pdfexport.HTML(records))
	if err != nil {
		return fail(fmt.Sprintf(msgBuildErrorFmt, err))
	}

	return &ConvertResult{
		FileName: outputFileName,
		Data:     base64.StdEncoding.EncodeToString(data),
	}
}

// GetSettings returns the current application settings
func (a *App) GetSettings() *Settings {
	return a.SettingsManager.Get()
}

// UpdateSettings updates the application settings
func (a *App) UpdateSettings(settings *Settings) error {
	if err := a.SettingsManager.Update(settings); err != nil {
		return err
	}
	a.EventBus.Publish(EventSettingsChange, settings)
	return nil
}

// GetRecentFiles returns the list of recent files
func (a *App) GetRecentFiles() []string {
	return a.FileManager.GetRecentFiles()
}

// ClearRecentFiles clears the recent files list
func (a *App) ClearRecentFiles() {
	a.FileManager.ClearRecentFiles()
	a.EventBus.Publish(EventRecentFilesWipe, nil)
}

// GetHistory returns all recorded conversions, most recent first.
func (a *App) GetHistory() ([]Conversion, error) {
	if a.History == nil {
		return nil, fmt.Errorf("conversion history unavailable")
	}
	return a.History.GetAllConversions()
}

// GetHistorySkips returns the skip report of one recorded conversion.
func (a *App) GetHistorySkips(conversionID int64) ([]pdfexport.Skip, error) {
	if a.History == nil {
		return nil, fmt.Errorf("conversion history unavailable")
	}
	return a.History.GetSkips(conversionID)
}

// layoutFromSettings maps export settings onto layout parameters, falling
// back to defaults for unset values.
func layoutFromSettings(export ExportSettings) pdfexport.Layout {
	layout := pdfexport.DefaultLayout()
	if export.QuestionFontSize > 0 {
		layout.QuestionSize = export.QuestionFontSize
	}
	if export.OptionFontSize > 0 {
		layout.OptionSize = export.OptionFontSize
	}
	if export.QuestionWidthFactor > 0 {
		layout.QuestionWidthFactor = export.QuestionWidthFactor
	}
	if export.PartWidthFactor > 0 {
		layout.PartWidthFactor = export.PartWidthFactor
	}
	if export.OptionWidthFactor > 0 {
		layout.OptionWidthFactor = export.OptionWidthFactor
	}
	if export.TrailingGap > 0 {
		layout.TrailingGap = export.TrailingGap
	}
	return layout
}
