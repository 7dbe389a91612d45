// Package config loads laneflow settings from a TOML file with
// environment overrides.
//
// Settings live in laneflow.toml next to the working directory (or an
// explicit path). Secrets are never read from the file: OPENAI_API_KEY,
// MIRO_TOKEN, CLICKUP_TOKEN, REDIS_ADDR and MONGO_URI come from the
// environment (a .env file is honored when present) and override
// whatever the file says.
//
// The layout engine itself does not consume this package. It takes an
// explicit layout.Config so library callers stay decoupled from files;
// the CLI and server translate Settings into engine options at the edge.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultPath is the settings file the CLI looks for when --config is not set.
const DefaultPath = "laneflow.toml"

// Settings is the root of the laneflow.toml document.
type Settings struct {
	Layout  LayoutSettings  `toml:"layout"`
	LLM     LLMSettings     `toml:"llm"`
	Miro    MiroSettings    `toml:"miro"`
	ClickUp ClickUpSettings `toml:"clickup"`
	Cache   CacheSettings   `toml:"cache"`
	Store   StoreSettings   `toml:"store"`
	Icons   IconSettings    `toml:"icons"`
	Server  ServerSettings  `toml:"server"`
}

// LayoutSettings mirrors the tunable knobs of the layout engine.
type LayoutSettings struct {
	SpacingX     float64 `toml:"spacing_x"`
	SpacingY     float64 `toml:"spacing_y"`
	LaneHeight   float64 `toml:"lane_height"`
	StackSpacing float64 `toml:"stack_spacing"`
	BaseWidth    float64 `toml:"base_width"`
	BaseHeight   float64 `toml:"base_height"`
}

// LLMSettings configures the chat-completion extractor.
type LLMSettings struct {
	APIKey      string  `toml:"-"` // env only
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// MiroSettings configures the Miro publisher.
type MiroSettings struct {
	Token  string `toml:"-"` // env only
	TeamID string `toml:"team_id"`
}

// ClickUpSettings configures the ClickUp publisher.
type ClickUpSettings struct {
	Token    string `toml:"-"` // env only
	TeamID   string `toml:"team_id"`
	SpaceID  string `toml:"space_id"`
	FolderID string `toml:"folder_id"`
}

// CacheSettings selects the cache backend.
type CacheSettings struct {
	// Backend is "file", "redis" or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"-"` // env only
}

// StoreSettings selects the persistence backend used by the server.
type StoreSettings struct {
	// Backend is "memory" or "mongo".
	Backend  string `toml:"backend"`
	MongoURI string `toml:"-"` // env only
	Database string `toml:"database"`
}

// IconSettings configures the icon library.
type IconSettings struct {
	Library string `toml:"library"` // path to icons.yaml
	Mode    string `toml:"mode"`    // svg, emoji or hybrid
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// Load reads the settings file at path, applies environment overrides and
// validates the result. A missing file is not an error: defaults plus the
// environment are enough to run every command that does not need secrets.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	s := &Settings{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s.applyEnv()
	if err := s.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadEnv loads a .env file into the process environment when one exists.
// Call once at startup, before Load.
func LoadEnv() {
	_ = godotenv.Load()
}

// applyEnv overlays environment variables onto the file values. Secrets are
// only ever read here.
func (s *Settings) applyEnv() {
	s.LLM.APIKey = envString("OPENAI_API_KEY", s.LLM.APIKey)
	s.LLM.Model = envString("OPENAI_MODEL", s.LLM.Model)
	s.LLM.MaxTokens = envInt("OPENAI_MAX_TOKENS", s.LLM.MaxTokens)
	s.Miro.Token = envString("MIRO_TOKEN", s.Miro.Token)
	s.ClickUp.Token = envString("CLICKUP_TOKEN", s.ClickUp.Token)
	s.ClickUp.TeamID = envString("CLICKUP_TEAM_ID", s.ClickUp.TeamID)
	s.ClickUp.SpaceID = envString("CLICKUP_SPACE_ID", s.ClickUp.SpaceID)
	s.Cache.RedisAddr = envString("REDIS_ADDR", s.Cache.RedisAddr)
	s.Store.MongoURI = envString("MONGO_URI", s.Store.MongoURI)
	s.Server.Addr = envString("LANEFLOW_ADDR", s.Server.Addr)
}

// ValidateAndSetDefaults fills zero values with defaults and rejects
// settings that cannot work.
func (s *Settings) ValidateAndSetDefaults() error {
	if s.Layout.SpacingX == 0 {
		s.Layout.SpacingX = 150
	}
	if s.Layout.SpacingY == 0 {
		s.Layout.SpacingY = 100
	}
	if s.Layout.LaneHeight == 0 {
		s.Layout.LaneHeight = 200
	}
	if s.Layout.StackSpacing == 0 {
		s.Layout.StackSpacing = 30
	}
	if s.Layout.BaseWidth == 0 {
		s.Layout.BaseWidth = 4000
	}
	if s.Layout.BaseHeight == 0 {
		s.Layout.BaseHeight = 3000
	}
	if s.Layout.SpacingX < 0 || s.Layout.SpacingY < 0 {
		return fmt.Errorf("layout spacing must not be negative")
	}

	if s.LLM.Model == "" {
		s.LLM.Model = "gpt-4o"
	}
	if s.LLM.MaxTokens == 0 {
		s.LLM.MaxTokens = 8000
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 1 {
		return fmt.Errorf("llm temperature must be in [0,1], got %v", s.LLM.Temperature)
	}

	switch s.Cache.Backend {
	case "":
		s.Cache.Backend = "file"
	case "file", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q (want file, redis or none)", s.Cache.Backend)
	}
	if s.Cache.Backend == "redis" && s.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend redis requires REDIS_ADDR")
	}

	switch s.Store.Backend {
	case "":
		s.Store.Backend = "memory"
	case "memory", "mongo":
	default:
		return fmt.Errorf("unknown store backend %q (want memory or mongo)", s.Store.Backend)
	}
	if s.Store.Backend == "mongo" && s.Store.MongoURI == "" {
		return fmt.Errorf("store backend mongo requires MONGO_URI")
	}
	if s.Store.Database == "" {
		s.Store.Database = "laneflow"
	}

	switch s.Icons.Mode {
	case "":
		s.Icons.Mode = "hybrid"
	case "svg", "emoji", "hybrid":
	default:
		return fmt.Errorf("unknown icon mode %q (want svg, emoji or hybrid)", s.Icons.Mode)
	}

	if s.Server.Addr == "" {
		s.Server.Addr = ":8080"
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
