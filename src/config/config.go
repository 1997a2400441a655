package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const (
	ConfigFileName = "config.json"
	ConfigPathVar  = "PORTABLE_SCREENSHOT_CONFIG"

	DefaultFormat     = "png"
	DefaultJPGQuality = 95
)

// Settings holds the persisted user preferences. Keys the current build
// does not know about survive a load/save cycle untouched in Extra.
type Settings struct {
	SaveDirectory string
	Format        string
	JPGQuality    int
	Extra         map[string]json.RawMessage
}

// Defaults returns a fresh defaults value on every call so callers can
// never mutate shared state through it.
func Defaults() Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Settings{
		SaveDirectory: filepath.Join(home, "Desktop"),
		Format:        DefaultFormat,
		JPGQuality:    DefaultJPGQuality,
	}
}

// DefaultPath resolves the settings file location: config.json beside
// the executable, overridable through PORTABLE_SCREENSHOT_CONFIG (from
// the environment or a .env next to the executable).
func DefaultPath() string {
	execDir := ""
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
		_ = godotenv.Load(filepath.Join(execDir, ".env"))
	}
	if alt := os.Getenv(ConfigPathVar); alt != "" {
		return alt
	}
	return filepath.Join(execDir, ConfigFileName)
}

// Load reads settings from path, overlaying any present keys on the
// defaults. A missing, empty or malformed file silently yields the
// defaults; per-key decode failures keep the default for that key.
func Load(path string) Settings {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}

	for key, value := range raw {
		switch key {
		case "save_directory":
			var dir string
			if json.Unmarshal(value, &dir) == nil {
				s.SaveDirectory = dir
			}
		case "format":
			var format string
			if json.Unmarshal(value, &format) == nil {
				s.Format = format
			}
		case "jpg_quality":
			var quality int
			if json.Unmarshal(value, &quality) == nil {
				s.JPGQuality = quality
			}
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			s.Extra[key] = value
		}
	}
	return s
}

// Save writes the settings to path as indented JSON, overwriting any
// existing file. Unknown keys from Extra are merged back in.
func Save(path string, s Settings) error {
	raw := make(map[string]json.RawMessage, len(s.Extra)+3)
	for key, value := range s.Extra {
		raw[key] = value
	}
	for key, value := range map[string]interface{}{
		"save_directory": s.SaveDirectory,
		"format":         s.Format,
		"jpg_quality":    s.JPGQuality,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		raw[key] = encoded
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Store is the single mutable settings object shared by the tray menu
// and the capture pipeline. Mutating setters persist immediately;
// Override applies CLI flags in memory only.
type Store struct {
	mu   sync.RWMutex
	path string
	s    Settings
}

func NewStore(path string) *Store {
	return &Store{path: path, s: Load(path)}
}

// Settings returns a snapshot of the current settings.
func (st *Store) Settings() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

func (st *Store) SetFormat(format string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Format = format
	st.persistLocked()
}

func (st *Store) SetSaveDirectory(dir string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SaveDirectory = dir
	st.persistLocked()
}

// Override applies one-shot CLI overrides without touching the file.
func (st *Store) Override(format, saveDir string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if format != "" {
		st.s.Format = format
	}
	if saveDir != "" {
		st.s.SaveDirectory = saveDir
	}
}

// Persist writes the current settings out, used on quit.
func (st *Store) Persist() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return Save(st.path, st.s)
}

func (st *Store) persistLocked() {
	if err := Save(st.path, st.s); err != nil {
		log.Printf("Failed to persist settings: %v", err)
	}
}
