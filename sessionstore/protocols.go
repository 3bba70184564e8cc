package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const protocolsFileName = "protocols.json"

// Protocol is one reusable test protocol description, selectable when
// filling the profile form.
type Protocol struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProtocolStore is a JSON-file backed list of named protocols, kept
// sorted case-insensitively. A missing or corrupt file behaves as an
// empty store; saves are best effort so a read-only disk never blocks
// data entry.
type ProtocolStore struct {
	path      string
	protocols []Protocol
}

// OpenProtocolStore loads the store under the given base directory.
func OpenProtocolStore(basePath string) *ProtocolStore {
	s := &ProtocolStore{path: filepath.Join(basePath, protocolsFileName)}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var protocols []Protocol
	if err := json.Unmarshal(data, &protocols); err != nil {
		return s
	}
	s.protocols = protocols
	s.sortByName()
	return s
}

// Names returns the protocol names in display order.
func (s *ProtocolStore) Names() []string {
	names := make([]string, len(s.protocols))
	for i, p := range s.protocols {
		names[i] = p.Name
	}
	return names
}

// Description returns the description of a named protocol, or "".
func (s *ProtocolStore) Description(name string) string {
	for _, p := range s.protocols {
		if p.Name == name {
			return p.Description
		}
	}
	return ""
}

// Add inserts a new protocol. It reports false when the name is empty or
// already taken.
func (s *ProtocolStore) Add(name, description string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.exists(name) {
		return false
	}
	s.protocols = append(s.protocols, Protocol{Name: name, Description: description})
	s.sortByName()
	s.save()
	return true
}

// Update replaces the description of an existing protocol.
func (s *ProtocolStore) Update(name, description string) bool {
	for i := range s.protocols {
		if s.protocols[i].Name == name {
			s.protocols[i].Description = description
			s.save()
			return true
		}
	}
	return false
}

// Rename changes a protocol's name. It reports false when the old name is
// unknown or the new name is empty or already taken.
func (s *ProtocolStore) Rename(oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" || s.exists(newName) {
		return false
	}
	for i := range s.protocols {
		if s.protocols[i].Name == oldName {
			s.protocols[i].Name = newName
			s.sortByName()
			s.save()
			return true
		}
	}
	return false
}

// Delete removes a protocol by name.
func (s *ProtocolStore) Delete(name string) bool {
	for i := range s.protocols {
		if s.protocols[i].Name == name {
			s.protocols = append(s.protocols[:i], s.protocols[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

func (s *ProtocolStore) exists(name string) bool {
	for _, p := range s.protocols {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s *ProtocolStore) sortByName() {
	sort.Slice(s.protocols, func(i, j int) bool {
		return strings.ToLower(s.protocols[i].Name) < strings.ToLower(s.protocols[j].Name)
	})
}

func (s *ProtocolStore) save() {
	data, err := json.MarshalIndent(s.protocols, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o644)
}
