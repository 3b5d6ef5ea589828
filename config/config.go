package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const maxRecentDocuments = 10

// Settings defines the client configuration persisted in the settings file.
type Settings struct {
	BaseURL           string            `json:"baseURL"`
	ExecuteURL        string            `json:"executeURL"`
	Token             string            `json:"token,omitempty"`
	SessionCookieName string            `json:"sessionCookieName"`
	SessionCookie     string            `json:"sessionCookie,omitempty"`
	Language          string            `json:"language"`
	LanguageVersions  map[string]string `json:"languageVersions"`
	ToastSeconds      int               `json:"toastSeconds"`
	TimeoutSeconds    int               `json:"timeoutSeconds"`
	RecentDocuments   []string          `json:"recentDocuments"`
}

// Defaults returns the settings used when no settings file exists yet.
func Defaults() Settings {
	return Settings{
		BaseURL:           "http://localhost:5000",
		ExecuteURL:        "https://emkc.org/api/v2/piston",
		SessionCookieName: "token",
		Language:          "python",
		LanguageVersions: map[string]string{
			"python":     "3.10.0",
			"javascript": "18.15.0",
			"typescript": "5.0.3",
			"go":         "1.16.2",
			"java":       "15.0.2",
			"c++":        "10.2.0",
		},
		ToastSeconds:    3,
		TimeoutSeconds:  30,
		RecentDocuments: []string{},
	}
}

// ToastDuration is how long a notification stays on screen.
func (s Settings) ToastDuration() time.Duration {
	return time.Duration(s.ToastSeconds) * time.Second
}

// Timeout bounds a single request to either remote service.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Languages returns the configured language names in a stable order.
func (s Settings) Languages() []string {
	langs := make([]string, 0, len(s.LanguageVersions))
	for lang := range s.LanguageVersions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Manager handles loading, saving, and accessing the client settings.
type Manager struct {
	filePath string
	settings *Settings
	mu       sync.RWMutex
}

// NewManager creates a settings manager backed by filePath.
func NewManager(filePath string) (*Manager, error) {
	defaults := Defaults()
	m := &Manager{
		filePath: filePath,
		settings: &defaults,
	}
	if err := m.LoadSettings(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadSettings loads settings from the JSON file, creating it with defaults
// when it does not exist yet.
func (m *Manager) LoadSettings() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			defaults := Defaults()
			m.settings = &defaults
			return m.saveSettings()
		}
		return err
	}

	settings := Defaults()
	if err := json.Unmarshal(data, &settings); err != nil {
		return err
	}
	normalize(&settings)
	m.settings = &settings
	return nil
}

// saveSettings writes the current settings to the JSON file.
// Callers must hold the write lock.
func (m *Manager) saveSettings() error {
	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// The file may hold a credential.
	return os.WriteFile(m.filePath, data, 0o600)
}

// GetSettings returns a copy of the current settings with environment
// overrides applied.
func (m *Manager) GetSettings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := *m.settings
	s.LanguageVersions = make(map[string]string, len(m.settings.LanguageVersions))
	for k, v := range m.settings.LanguageVersions {
		s.LanguageVersions[k] = v
	}
	s.RecentDocuments = append([]string(nil), m.settings.RecentDocuments...)
	applyEnv(&s)
	return s
}

// AddRecentDocument moves id to the front of the recent documents list and saves.
func (m *Manager) AddRecentDocument(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := []string{id}
	for _, existing := range m.settings.RecentDocuments {
		if existing != id {
			recent = append(recent, existing)
		}
	}
	if len(recent) > maxRecentDocuments {
		recent = recent[:maxRecentDocuments]
	}
	m.settings.RecentDocuments = recent
	return m.saveSettings()
}

// MostRecentDocument returns the last opened document id, if any.
func (m *Manager) MostRecentDocument() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.settings.RecentDocuments) == 0 {
		return ""
	}
	return m.settings.RecentDocuments[0]
}

// SetLanguage records the preferred language and saves.
func (m *Manager) SetLanguage(lang string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settings.LanguageVersions[lang]; !ok {
		return nil
	}
	m.settings.Language = lang
	return m.saveSettings()
}

func normalize(s *Settings) {
	d := Defaults()
	if s.ToastSeconds <= 0 {
		s.ToastSeconds = d.ToastSeconds
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = d.TimeoutSeconds
	}
	if len(s.LanguageVersions) == 0 {
		s.LanguageVersions = d.LanguageVersions
	}
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.SessionCookieName == "" {
		s.SessionCookieName = d.SessionCookieName
	}
	if s.RecentDocuments == nil {
		s.RecentDocuments = []string{}
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	s.ExecuteURL = strings.TrimRight(s.ExecuteURL, "/")
}

// applyEnv overrides file settings with CODESHARE_* environment variables.
// Overrides are not written back to the settings file.
func applyEnv(s *Settings) {
	s.BaseURL = strings.TrimRight(getenv("CODESHARE_BASE_URL", s.BaseURL), "/")
	s.ExecuteURL = strings.TrimRight(getenv("CODESHARE_EXECUTE_URL", s.ExecuteURL), "/")
	s.Token = getenv("CODESHARE_TOKEN", s.Token)
	s.SessionCookie = getenv("CODESHARE_SESSION_COOKIE", s.SessionCookie)
	s.Language = getenv("CODESHARE_LANGUAGE", s.Language)
	s.ToastSeconds = getenvInt("CODESHARE_TOAST_SECONDS", s.ToastSeconds)
	s.TimeoutSeconds = getenvInt("CODESHARE_TIMEOUT_SECONDS", s.TimeoutSeconds)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
