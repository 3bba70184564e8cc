// Package sessionstore persists testing sessions, operator profiles and
// profile/XML matches as plain JSON files on disk. A session is one
// testing day at one location.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	tcpexport "tcp-export"
)

const (
	sessionsDirName = "Sessions"
	sessionFileName = "session.json"
	profilesDirName = "profiles"
	xmlDirName      = "xml"
	outputDirName   = "output"
	matchesFileName = "matches.json"
)

// Session describes one testing day.
type Session struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ProfileMatch records which profile was paired with which export file.
type ProfileMatch struct {
	ProfileName string `json:"profile_name"`
	XMLFilename string `json:"xml_filename"`
	MatchedAt   string `json:"matched_at"`
	Exported    bool   `json:"exported"`
}

// Manager owns the Sessions tree under a base directory.
type Manager struct {
	basePath string
}

func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

func (m *Manager) sessionsPath() string {
	return filepath.Join(m.basePath, sessionsDirName)
}

// Dir returns the folder of a named session.
func (m *Manager) Dir(sessionName string) string {
	return filepath.Join(m.sessionsPath(), sessionName)
}

// ProfilesDir returns the profiles folder of a session.
func (m *Manager) ProfilesDir(sessionName string) string {
	return filepath.Join(m.Dir(sessionName), profilesDirName)
}

// XMLDir returns the folder holding the session's TCP export files.
func (m *Manager) XMLDir(sessionName string) string {
	return filepath.Join(m.Dir(sessionName), xmlDirName)
}

// OutputDir returns the folder receiving the session's export artifacts.
func (m *Manager) OutputDir(sessionName string) string {
	return filepath.Join(m.Dir(sessionName), outputDirName)
}

// Create makes a new session folder named <date>_<location> with its
// profiles/xml/output subdirectories and writes session.json.
func (m *Manager) Create(date, location, description string) (*Session, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("session date is required")
	}
	name := date + "_" + sanitizeName(location)
	dir := m.Dir(name)
	if _, err := os.Stat(filepath.Join(dir, sessionFileName)); err == nil {
		return nil, fmt.Errorf("session already exists: %s", name)
	}
	for _, sub := range []string{"", profilesDirName, xmlDirName, outputDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}
	s := &Session{
		Name:        name,
		Date:        date,
		Location:    location,
		Description: description,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if err := writeJSONFile(filepath.Join(dir, sessionFileName), s); err != nil {
		return nil, fmt.Errorf("write session.json: %w", err)
	}
	return s, nil
}

// Open loads an existing session by folder name.
func (m *Manager) Open(sessionName string) (*Session, error) {
	var s Session
	if err := readJSONFile(filepath.Join(m.Dir(sessionName), sessionFileName), &s); err != nil {
		return nil, fmt.Errorf("open session %s: %w", sessionName, err)
	}
	return &s, nil
}

// List returns every session, newest first. A missing Sessions tree is an
// empty list, not an error.
func (m *Manager) List() ([]Session, error) {
	entries, err := os.ReadDir(m.sessionsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions directory: %w", err)
	}
	sessions := make([]Session, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var s Session
		if err := readJSONFile(filepath.Join(m.sessionsPath(), e.Name(), sessionFileName), &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt != sessions[j].CreatedAt {
			return sessions[i].CreatedAt > sessions[j].CreatedAt
		}
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// SaveProfile stores an operator profile in the session's profiles folder
// and returns the file path.
func (m *Manager) SaveProfile(sessionName, profileName string, input tcpexport.ManualInput) (string, error) {
	if strings.TrimSpace(profileName) == "" {
		return "", fmt.Errorf("profile name is required")
	}
	dir := m.ProfilesDir(sessionName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create profiles directory: %w", err)
	}
	path := filepath.Join(dir, sanitizeName(profileName)+".json")
	if err := writeJSONFile(path, input); err != nil {
		return "", fmt.Errorf("write profile %s: %w", profileName, err)
	}
	return path, nil
}

// LoadProfile reads a stored profile back.
func (m *Manager) LoadProfile(sessionName, profileName string) (tcpexport.ManualInput, error) {
	var input tcpexport.ManualInput
	path := filepath.Join(m.ProfilesDir(sessionName), sanitizeName(profileName)+".json")
	if err := readJSONFile(path, &input); err != nil {
		return input, fmt.Errorf("load profile %s: %w", profileName, err)
	}
	return input, nil
}

// ListProfiles returns the stored profile names of a session, sorted.
func (m *Manager) ListProfiles(sessionName string) ([]string, error) {
	entries, err := os.ReadDir(m.ProfilesDir(sessionName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profiles directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// AddMatch pairs a profile with an export file. Re-matching an already
// paired profile replaces the pairing and resets its exported flag.
func (m *Manager) AddMatch(sessionName, profileName, xmlFilename string) error {
	matches, err := m.Matches(sessionName)
	if err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)
	for i := range matches {
		if matches[i].ProfileName == profileName {
			matches[i].XMLFilename = xmlFilename
			matches[i].MatchedAt = now
			matches[i].Exported = false
			return m.saveMatches(sessionName, matches)
		}
	}
	matches = append(matches, ProfileMatch{
		ProfileName: profileName,
		XMLFilename: xmlFilename,
		MatchedAt:   now,
	})
	return m.saveMatches(sessionName, matches)
}

// Matches returns the session's pairings. A missing file is an empty list.
func (m *Manager) Matches(sessionName string) ([]ProfileMatch, error) {
	var matches []ProfileMatch
	path := filepath.Join(m.Dir(sessionName), matchesFileName)
	if err := readJSONFile(path, &matches); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read matches: %w", err)
	}
	return matches, nil
}

// MarkExported flags a profile's pairing as exported.
func (m *Manager) MarkExported(sessionName, profileName string) error {
	matches, err := m.Matches(sessionName)
	if err != nil {
		return err
	}
	for i := range matches {
		if matches[i].ProfileName == profileName {
			matches[i].Exported = true
			return m.saveMatches(sessionName, matches)
		}
	}
	return fmt.Errorf("no match recorded for profile %s", profileName)
}

func (m *Manager) saveMatches(sessionName string, matches []ProfileMatch) error {
	path := filepath.Join(m.Dir(sessionName), matchesFileName)
	if err := writeJSONFile(path, matches); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
