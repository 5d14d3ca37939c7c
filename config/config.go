package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize             int     `json:"tab_size"`
	TreeWidth           int     `json:"tree_width"`
	PanelRatio          float64 `json:"panel_ratio"`
	Theme               string  `json:"theme"`
	EntryFile           string  `json:"entry_file"`
	AutoClose           bool    `json:"auto_close"`
	InlineCompletion    bool    `json:"inline_completion"`
	CompileDelayMS      int     `json:"compile_delay_ms"`
	AssistantMinDelayMS int     `json:"assistant_min_delay_ms"`
	AssistantMaxDelayMS int     `json:"assistant_max_delay_ms"`
	LogLevel            string  `json:"log_level"`
	LogFile             string  `json:"log_file"`
}

// LanguageTabSize returns the indentation width for a language, falling
// back to the configured tab size.
func (c *Config) LanguageTabSize(language string) int {
	switch language {
	case "javascript", "typescript", "json", "html", "css", "yaml":
		return 2
	case "go", "python", "java", "c", "cpp", "rust", "php":
		return 4
	default:
		return c.TabSize
	}
}

func (c *Config) LanguageUseTabs(language string) bool {
	return language == "go"
}

func (c *Config) CompileDelay() time.Duration {
	return time.Duration(c.CompileDelayMS) * time.Millisecond
}

func (c *Config) AssistantDelay() (lo, hi time.Duration) {
	return time.Duration(c.AssistantMinDelayMS) * time.Millisecond,
		time.Duration(c.AssistantMaxDelayMS) * time.Millisecond
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Muted           tcell.Color
	Selection       tcell.Color
	LineNumber      tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	TabBarBg        tcell.Color
	TabBarFg        tcell.Color
	TabBarActiveBg  tcell.Color
	TabBarActiveFg  tcell.Color
	Modified        tcell.Color
	TreeHeaderFg    tcell.Color
	TreeDirFg       tcell.Color
	TreeFileFg      tcell.Color
	TreeSelectionBg tcell.Color
	Border          tcell.Color
	DialogBg        tcell.Color
	DialogFg        tcell.Color
	DialogInputBg   tcell.Color
	PanelBg         tcell.Color
	Success         tcell.Color
	Error           tcell.Color
	Info            tcell.Color
	Accent          tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Void Dark",
		Background:      tcell.NewRGBColor(2, 6, 23),
		Foreground:      tcell.NewRGBColor(226, 232, 240),
		Muted:           tcell.NewRGBColor(100, 116, 139),
		Selection:       tcell.NewRGBColor(30, 41, 59),
		LineNumber:      tcell.NewRGBColor(71, 85, 105),
		StatusBarBg:     tcell.NewRGBColor(15, 23, 42),
		StatusBarFg:     tcell.NewRGBColor(148, 163, 184),
		StatusBarModeBg: tcell.NewRGBColor(37, 99, 235),
		TabBarBg:        tcell.NewRGBColor(15, 23, 42),
		TabBarFg:        tcell.NewRGBColor(100, 116, 139),
		TabBarActiveBg:  tcell.NewRGBColor(30, 41, 59),
		TabBarActiveFg:  tcell.NewRGBColor(241, 245, 249),
		Modified:        tcell.NewRGBColor(250, 204, 21),
		TreeHeaderFg:    tcell.NewRGBColor(203, 213, 225),
		TreeDirFg:       tcell.NewRGBColor(96, 165, 250),
		TreeFileFg:      tcell.NewRGBColor(203, 213, 225),
		TreeSelectionBg: tcell.NewRGBColor(30, 41, 59),
		Border:          tcell.NewRGBColor(51, 65, 85),
		DialogBg:        tcell.NewRGBColor(15, 23, 42),
		DialogFg:        tcell.NewRGBColor(226, 232, 240),
		DialogInputBg:   tcell.NewRGBColor(30, 41, 59),
		PanelBg:         tcell.NewRGBColor(15, 23, 42),
		Success:         tcell.NewRGBColor(74, 222, 128),
		Error:           tcell.NewRGBColor(248, 113, 113),
		Info:            tcell.NewRGBColor(250, 204, 21),
		Accent:          tcell.NewRGBColor(59, 130, 246),
	},
	"light": {
		Name:            "Void Light",
		Background:      tcell.NewRGBColor(248, 250, 252),
		Foreground:      tcell.NewRGBColor(15, 23, 42),
		Muted:           tcell.NewRGBColor(100, 116, 139),
		Selection:       tcell.NewRGBColor(219, 234, 254),
		LineNumber:      tcell.NewRGBColor(148, 163, 184),
		StatusBarBg:     tcell.NewRGBColor(226, 232, 240),
		StatusBarFg:     tcell.NewRGBColor(51, 65, 85),
		StatusBarModeBg: tcell.NewRGBColor(59, 130, 246),
		TabBarBg:        tcell.NewRGBColor(241, 245, 249),
		TabBarFg:        tcell.NewRGBColor(100, 116, 139),
		TabBarActiveBg:  tcell.NewRGBColor(255, 255, 255),
		TabBarActiveFg:  tcell.NewRGBColor(15, 23, 42),
		Modified:        tcell.NewRGBColor(202, 138, 4),
		TreeHeaderFg:    tcell.NewRGBColor(51, 65, 85),
		TreeDirFg:       tcell.NewRGBColor(37, 99, 235),
		TreeFileFg:      tcell.NewRGBColor(30, 41, 59),
		TreeSelectionBg: tcell.NewRGBColor(219, 234, 254),
		Border:          tcell.NewRGBColor(203, 213, 225),
		DialogBg:        tcell.NewRGBColor(255, 255, 255),
		DialogFg:        tcell.NewRGBColor(15, 23, 42),
		DialogInputBg:   tcell.NewRGBColor(241, 245, 249),
		PanelBg:         tcell.NewRGBColor(241, 245, 249),
		Success:         tcell.NewRGBColor(22, 163, 74),
		Error:           tcell.NewRGBColor(220, 38, 38),
		Info:            tcell.NewRGBColor(202, 138, 4),
		Accent:          tcell.NewRGBColor(37, 99, 235),
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		Muted:           tcell.NewRGBColor(117, 113, 94),
		Selection:       tcell.NewRGBColor(73, 72, 62),
		LineNumber:      tcell.NewRGBColor(144, 144, 128),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		TabBarBg:        tcell.NewRGBColor(39, 40, 34),
		TabBarFg:        tcell.NewRGBColor(144, 144, 128),
		TabBarActiveBg:  tcell.NewRGBColor(73, 72, 62),
		TabBarActiveFg:  tcell.NewRGBColor(248, 248, 242),
		Modified:        tcell.NewRGBColor(230, 219, 116),
		TreeHeaderFg:    tcell.NewRGBColor(249, 38, 114),
		TreeDirFg:       tcell.NewRGBColor(102, 217, 239),
		TreeFileFg:      tcell.NewRGBColor(248, 248, 242),
		TreeSelectionBg: tcell.NewRGBColor(73, 72, 62),
		Border:          tcell.NewRGBColor(144, 144, 128),
		DialogBg:        tcell.NewRGBColor(39, 40, 34),
		DialogFg:        tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:   tcell.NewRGBColor(73, 72, 62),
		PanelBg:         tcell.NewRGBColor(30, 31, 28),
		Success:         tcell.NewRGBColor(166, 226, 46),
		Error:           tcell.NewRGBColor(249, 38, 114),
		Info:            tcell.NewRGBColor(230, 219, 116),
		Accent:          tcell.NewRGBColor(102, 217, 239),
	},
}

const DefaultTheme = "dark"

func Default() *Config {
	return &Config{
		TabSize:             4,
		TreeWidth:           28,
		PanelRatio:          0.30,
		Theme:               DefaultTheme,
		EntryFile:           "index.html",
		AutoClose:           true,
		InlineCompletion:    true,
		CompileDelayMS:      1500,
		AssistantMinDelayMS: 1000,
		AssistantMaxDelayMS: 1500,
		LogLevel:            "info",
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes[DefaultTheme]
	}
	return theme
}

// NextTheme cycles dark → light → monokai → dark.
func (c *Config) NextTheme() string {
	order := []string{"dark", "light", "monokai"}
	for i, name := range order {
		if name == c.Theme {
			return order[(i+1)%len(order)]
		}
	}
	return DefaultTheme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "void", "settings.json")
}

func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads settings from path on top of the defaults. A missing file
// is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	if c.TabSize <= 0 {
		c.TabSize = d.TabSize
	}
	if c.TreeWidth < 10 {
		c.TreeWidth = d.TreeWidth
	}
	if c.PanelRatio <= 0 || c.PanelRatio >= 0.9 {
		c.PanelRatio = d.PanelRatio
	}
	if c.EntryFile == "" {
		c.EntryFile = d.EntryFile
	}
	if c.CompileDelayMS <= 0 {
		c.CompileDelayMS = d.CompileDelayMS
	}
	if c.AssistantMinDelayMS <= 0 {
		c.AssistantMinDelayMS = d.AssistantMinDelayMS
	}
	if c.AssistantMaxDelayMS < c.AssistantMinDelayMS {
		c.AssistantMaxDelayMS = c.AssistantMinDelayMS
	}
}
