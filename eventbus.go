package main

import (
	"sync"
)

// EventHandler is a function that handles events.
type EventHandler func(data interface{})

// EventBus provides pub/sub functionality for decoupled communication
// between the conversion pipeline and the UI shell.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

// NewEventBus creates a new EventBus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe registers a handler for an event type.
func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish emits an event to all subscribers. Handlers run in goroutines so a
// slow subscriber never blocks the conversion.
func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, handler := range eb.handlers[event] {
		go handler(data)
	}
}

// Event types for QuizPDF.
const (
	EventAppStartup = "app.startup"

	// File events
	EventFileOpen        = "file.open"
	EventRecentFilesWipe = "file.recent.clear"

	// Conversion lifecycle events
	EventConversionStart = "conversion.start"
	EventConversionDone  = "conversion.done"
	EventConversionError = "conversion.error"
	EventPDFSaved        = "conversion.saved"

	// UI events
	EventSettingsChange = "settings.change"
)

// FileEventData accompanies file events.
type FileEventData struct {
	FileInfo *FileInfo `json:"fileInfo"`
}

// ConversionEventData accompanies conversion lifecycle events.
type ConversionEventData struct {
	SourcePath    string `json:"sourcePath"`
	QuestionCount int    `json:"questionCount"`
	PageCount     int    `json:"pageCount"`
	Error         string `json:"error,omitempty"`
}
