package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the fetch and pick stages.
type Config struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Files  FilesConfig  `yaml:"files"`
	Picker PickerConfig `yaml:"picker"`
}

// FetchConfig controls the stats API client.
type FetchConfig struct {
	BaseURL       string        `yaml:"base_url"`
	UserAgent     string        `yaml:"user_agent"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	MaxAttempts   int           `yaml:"max_attempts"`
	RawRoot       string        `yaml:"raw_root"`
	Query         QueryConfig   `yaml:"query"`
}

// QueryConfig mirrors the filters of the stats table endpoint.
type QueryConfig struct {
	SeasonID     int    `yaml:"season_id"`
	Mode         string `yaml:"mode"`
	StatsType    string `yaml:"stats_type"`
	Weeks        []int  `yaml:"weeks"`
	Rounds       []int  `yaml:"rounds"`
	Teams        []int  `yaml:"teams"`
	Positions    []int  `yaml:"positions"`
	PlayerSearch string `yaml:"player_search"`
	MinCredits   int    `yaml:"min_cr"`
	MaxCredits   int    `yaml:"max_cr"`
	SortBy       string `yaml:"sort_by"`
	SortOrder    string `yaml:"sort_order"`
	Iframe       string `yaml:"iframe"`
	DateFrom     string `yaml:"date_from"`
	DateTo       string `yaml:"date_to"`
}

// FilesConfig names the flat files both stages exchange.
type FilesConfig struct {
	RawCSV    string `yaml:"raw_csv"`
	PrettyCSV string `yaml:"pretty_csv"`
	OutDir    string `yaml:"out_dir"`
}

// PickerConfig holds the ranking thresholds.
type PickerConfig struct {
	TopNPerPos        int            `yaml:"top_n_per_pos"`
	CheapMaxCredits   float64        `yaml:"cheap_max_credits"`
	PremiumMinCredits float64        `yaml:"premium_min_credits"`
	OverallLimit      int            `yaml:"overall_limit"`
	PrintMaxRows      int            `yaml:"print_max_rows"`
	TeamShape         map[string]int `yaml:"team_shape"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			BaseURL:       "https://www.dunkest.com/api",
			UserAgent:     "Mozilla/5.0",
			Timeout:       60 * time.Second,
			RatePerSecond: 1,
			MaxAttempts:   3,
			RawRoot:       "data/raw",
			Query: QueryConfig{
				SeasonID:   17,
				Mode:       "nba",
				StatsType:  "tot",
				Weeks:      []int{43},
				Rounds:     []int{1},
				Teams:      []int{31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 47, 48, 60},
				Positions:  []int{1, 2, 3},
				MinCredits: 4,
				MaxCredits: 35,
				SortBy:     "pdk",
				SortOrder:  "desc",
				Iframe:     "yes",
				DateFrom:   "2024-10-03",
				DateTo:     "2025-05-31",
			},
		},
		Files: FilesConfig{
			RawCSV:    "players_raw.csv",
			PrettyCSV: "players_pretty.csv",
			OutDir:    "out",
		},
		Picker: PickerConfig{
			TopNPerPos:        10,
			CheapMaxCredits:   8.0,
			PremiumMinCredits: 15.0,
			OverallLimit:      50,
			PrintMaxRows:      20,
			TeamShape:         map[string]int{"G": 4, "F": 4, "C": 4},
		},
	}
}

// Load reads path on top of Default. An empty path or a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be >= 1, got %d", c.Fetch.MaxAttempts)
	}
	if c.Fetch.RatePerSecond < 0 {
		return fmt.Errorf("fetch.rate_per_second must be >= 0, got %v", c.Fetch.RatePerSecond)
	}
	p := c.Picker
	if p.TopNPerPos <= 0 {
		return fmt.Errorf("picker.top_n_per_pos must be > 0, got %d", p.TopNPerPos)
	}
	if p.OverallLimit <= 0 {
		return fmt.Errorf("picker.overall_limit must be > 0, got %d", p.OverallLimit)
	}
	if p.CheapMaxCredits < 0 {
		return fmt.Errorf("picker.cheap_max_credits must be >= 0, got %v", p.CheapMaxCredits)
	}
	for pos, n := range p.TeamShape {
		switch pos {
		case "G", "F", "C":
		default:
			return fmt.Errorf("picker.team_shape: unknown position %q", pos)
		}
		if n < 0 {
			return fmt.Errorf("picker.team_shape[%s] must be >= 0, got %d", pos, n)
		}
	}
	return nil
}
