package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PathsConfig locates the library and the working folders of a run.
type PathsConfig struct {
	LibraryRoot string `yaml:"library_root"`
	SourceDir   string `yaml:"source_dir"`
	FallbackDir string `yaml:"fallback_dir"`
}

// CorpusConfig describes the folder convention of the existing corpus.
type CorpusConfig struct {
	ProjectTextFolder string   `yaml:"project_text_folder"`
	RootTextFolder    string   `yaml:"root_text_folder"`
	SkipFolders       []string `yaml:"skip_folders"`
	ExcludeMarkers    []string `yaml:"exclude_markers"`
}

// ThresholdsConfig holds the inclusive lower bounds of the decisions.
type ThresholdsConfig struct {
	Skip    float64 `yaml:"skip"`
	Version float64 `yaml:"version"`
}

// SimilarityConfig tunes the scorer.
type SimilarityConfig struct {
	AutoJunk bool `yaml:"autojunk"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Paths      PathsConfig      `yaml:"paths"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Log        LogConfig        `yaml:"log"`
}

// Environment variables that override the file.
const (
	EnvLibraryRoot = "NOTESORT_LIBRARY_ROOT"
	EnvSourceDir   = "NOTESORT_SOURCE_DIR"
	EnvFallbackDir = "NOTESORT_FALLBACK_DIR"
	EnvLogLevel    = "NOTESORT_LOG_LEVEL"
	EnvAutoJunk    = "NOTESORT_AUTOJUNK"
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./notesort.yaml first, then ~/.config/notesort/config.yaml.
// If neither exists, it writes defaults to ~/.config/notesort/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "notesort.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ResolvedLibraryRoot returns the library root, defaulting to two levels
// above the source folder (<root>/Teksty/<source>).
func (c *AppConfig) ResolvedLibraryRoot(sourceDir string) string {
	if c.Paths.LibraryRoot != "" {
		return c.Paths.LibraryRoot
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		abs = sourceDir
	}
	return filepath.Dir(filepath.Dir(abs))
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notesort", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Paths: PathsConfig{
			SourceDir:   filepath.Join("Teksty", "wyodrebnione_notatki"),
			FallbackDir: filepath.Join("Teksty", "wyodrebnione_teksty"),
		},
		Corpus: CorpusConfig{
			ProjectTextFolder: "Tekst",
			RootTextFolder:    "Teksty",
			SkipFolders:       []string{"Bity", "Teksty", "Pliki", "Sortownia", ".venv"},
			ExcludeMarkers:    []string{"wyodrebnione"},
		},
		Thresholds: ThresholdsConfig{Skip: 100, Version: 40},
		Log:        LogConfig{Level: "info", Format: "text"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Paths.SourceDir == "" {
		cfg.Paths.SourceDir = def.Paths.SourceDir
	}
	if cfg.Paths.FallbackDir == "" {
		cfg.Paths.FallbackDir = def.Paths.FallbackDir
	}
	if cfg.Corpus.ProjectTextFolder == "" {
		cfg.Corpus.ProjectTextFolder = def.Corpus.ProjectTextFolder
	}
	if cfg.Corpus.RootTextFolder == "" {
		cfg.Corpus.RootTextFolder = def.Corpus.RootTextFolder
	}
	if cfg.Corpus.SkipFolders == nil {
		cfg.Corpus.SkipFolders = def.Corpus.SkipFolders
	}
	if cfg.Corpus.ExcludeMarkers == nil {
		cfg.Corpus.ExcludeMarkers = def.Corpus.ExcludeMarkers
	}
	if cfg.Thresholds.Skip == 0 {
		cfg.Thresholds.Skip = def.Thresholds.Skip
	}
	if cfg.Thresholds.Version == 0 {
		cfg.Thresholds.Version = def.Thresholds.Version
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv(EnvLibraryRoot); v != "" {
		cfg.Paths.LibraryRoot = v
	}
	if v := os.Getenv(EnvSourceDir); v != "" {
		cfg.Paths.SourceDir = v
	}
	if v := os.Getenv(EnvFallbackDir); v != "" {
		cfg.Paths.FallbackDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvAutoJunk); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Similarity.AutoJunk = b
		}
	}
}
