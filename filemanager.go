package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// FileInfo represents metadata about a selected quiz file.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
}

// FileManager handles all file operations.
type FileManager struct {
	app            *App
	recentFiles    []string
	maxRecentFiles int
	settingsDir    string
}

// NewFileManager creates a new FileManager instance.
func NewFileManager(app *App) *FileManager {
	return &FileManager{
		app:            app,
		recentFiles:    make([]string, 0),
		maxRecentFiles: 10,
		settingsDir:    getSettingsDir(),
	}
}

// getSettingsDir returns the directory for storing settings.
func getSettingsDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./.quizpdf"
	}
	return filepath.Join(homeDir, ".quizpdf")
}

// ensureSettingsDir creates the settings directory if it doesn't exist.
func (fm *FileManager) ensureSettingsDir() error {
	return os.MkdirAll(fm.settingsDir, 0755)
}

// ReadFile reads a quiz file as text and returns content and metadata.
func (fm *FileManager) ReadFile(filePath string) (*FileInfo, string, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	fileInfo := &FileInfo{
		Path:         filePath,
		Name:         filepath.Base(filePath),
		Size:         stat.Size(),
		LastModified: stat.ModTime().Unix(),
	}

	fm.addToRecentFiles(filePath)

	return fileInfo, string(data), nil
}

// WritePDF saves the converted document to a file.
func (fm *FileManager) WritePDF(filePath string, data []byte) (*FileInfo, error) {
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:         filePath,
		Name:         filepath.Base(filePath),
		Size:         stat.Size(),
		LastModified: stat.ModTime().Unix(),
	}, nil
}

// OpenFileDialog shows a quiz file open dialog and returns the selected path.
func (fm *FileManager) OpenFileDialog() (string, error) {
	selection, err := runtime.OpenFileDialog(fm.app.ctx, runtime.OpenDialogOptions{
		Title: "Chọn tệp MyTestX",
		Filters: []runtime.FileFilter{
			{DisplayName: "MyTestX Files (*.xml)", Pattern: "*.xml"},
			{DisplayName: "All Files (*.*)", Pattern: "*.*"},
		},
	})
	if err != nil {
		return "", err
	}
	return selection, nil
}

// SaveFileDialog shows a save dialog for the converted PDF.
func (fm *FileManager) SaveFileDialog(defaultName string) (string, error) {
	selection, err := runtime.SaveFileDialog(fm.app.ctx, runtime.SaveDialogOptions{
		Title:           "Lưu tệp PDF",
		DefaultFilename: defaultName,
		Filters: []runtime.FileFilter{
			{DisplayName: "PDF Files (*.pdf)", Pattern: "*.pdf"},
		},
	})
	if err != nil {
		return "", err
	}
	return selection, nil
}

// addToRecentFiles adds a file to recent files list.
func (fm *FileManager) addToRecentFiles(filePath string) {
	for i, path := range fm.recentFiles {
		if path == filePath {
			fm.recentFiles = append(fm.recentFiles[:i], fm.recentFiles[i+1:]...)
			break
		}
	}

	fm.recentFiles = append([]string{filePath}, fm.recentFiles...)

	if len(fm.recentFiles) > fm.maxRecentFiles {
		fm.recentFiles = fm.recentFiles[:fm.maxRecentFiles]
	}

	fm.saveRecentFiles()
}

// GetRecentFiles returns the list of recent files.
func (fm *FileManager) GetRecentFiles() []string {
	return fm.recentFiles
}

// loadRecentFiles loads recent files from disk.
func (fm *FileManager) loadRecentFiles() error {
	fm.ensureSettingsDir()

	data, err := os.ReadFile(filepath.Join(fm.settingsDir, "recent_files.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &fm.recentFiles)
}

// saveRecentFiles saves recent files to disk.
func (fm *FileManager) saveRecentFiles() error {
	fm.ensureSettingsDir()

	data, err := json.Marshal(fm.recentFiles)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(fm.settingsDir, "recent_files.json"), data, 0644)
}

// ClearRecentFiles clears the recent files list.
func (fm *FileManager) ClearRecentFiles() {
	fm.recentFiles = make([]string, 0)
	fm.saveRecentFiles()
}

// Startup initializes the file manager.
func (fm *FileManager) Startup() {
	fm.loadRecentFiles()
}
