package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"proctab/internal/column"
	"proctab/internal/search"
	"proctab/internal/theme"
	"proctab/internal/util/logx"
	"proctab/internal/util/text"
)

type ColorMode string

const (
	ColorAuto    ColorMode = "auto"
	ColorAlways  ColorMode = "always"
	ColorDisable ColorMode = "disable"
)

func parseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorDisable:
		return m, nil
	}
	return ColorAuto, fmt.Errorf("unknown color mode %q (want auto|always|disable)", s)
}

type Column struct {
	Kind   column.Kind
	Header string
	Align  text.Align
	// explicit is false when Align came from the kind's default
	explicit bool
}

// AlignFor returns the configured alignment, or def when none was set.
func (c Column) AlignFor(def text.Align) text.Align {
	if c.explicit {
		return c.Align
	}
	return def
}

type Config struct {
	ConfigPath string
	// Theme is the configured value; ThemeOverride comes from --theme.
	Theme         theme.Theme
	ThemeOverride theme.Theme
	Color         ColorMode
	Logic         search.Logic
	Case          search.Case
	AbbrPath      bool
	Columns       []Column
	SortKind      column.Kind
	SortDesc      bool
	FilterExpr    string
	Keywords      []string
	Once          bool
	Interval      time.Duration
	ProcRoot      string
	ExportFormat  string
	ExportOut     string
	Redact        bool
	ShowVersion   bool
}

// file mirrors the TOML layout.
type file struct {
	Columns []struct {
		Kind   string `toml:"kind"`
		Header string `toml:"header"`
		Align  string `toml:"align"`
	} `toml:"columns"`
	Display struct {
		Theme    string `toml:"theme"`
		Color    string `toml:"color"`
		AbbrPath *bool  `toml:"abbr_path"`
	} `toml:"display"`
	Search struct {
		Logic string `toml:"logic"`
		Case  string `toml:"case"`
	} `toml:"search"`
	Sort struct {
		Column string `toml:"column"`
		Order  string `toml:"order"`
	} `toml:"sort"`
}

func Default() *Config {
	cfg := &Config{
		Theme:         theme.Auto,
		ThemeOverride: theme.Auto,
		Color:         ColorAuto,
		Logic:         search.And,
		Case:          search.Smart,
		SortKind:      column.KindCPU,
		SortDesc:      true,
		Interval:      time.Second,
		ProcRoot:      "/proc",
	}
	for _, ki := range column.KindList {
		cfg.Columns = append(cfg.Columns, Column{Kind: ki.Kind})
	}
	return cfg
}

// Load parses args (without the program name). Flags win over the
// config file, which wins over defaults.
func Load(args []string, stderr io.Writer) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("proctab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", getenvDefault("PROCTAB_CONFIG", ""), "path to TOML config file")
		themeFlag  = fs.String("theme", "auto", "theme: auto|dark|light")
		colorFlag  = fs.String("color", "auto", "color for plain output: auto|always|disable")
		logicFlag  = fs.String("logic", "and", "keyword logic: and|or|nand|nor")
		caseFlag   = fs.String("case", "smart", "keyword case: smart|sensitive|insensitive")
		abbr       = fs.Bool("abbr", false, "abbreviate command paths")
		sortFlag   = fs.String("sort", "", "sort by column kind (e.g. cpu, rss, pid)")
		desc       = fs.Bool("desc", true, "sort descending")
	)
	fs.StringVar(&cfg.FilterExpr, "filter", "", `filter expression, e.g. "rss > 1048576 && user == 'root'"`)
	fs.BoolVar(&cfg.Once, "once", false, "print the table once and exit (default when stdout is not a terminal)")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.StringVar(&cfg.ProcRoot, "proc-root", cfg.ProcRoot, "procfs mount point")
	fs.StringVar(&cfg.ExportFormat, "export", "", "export filtered view: csv|json")
	fs.StringVar(&cfg.ExportOut, "out", "", "output path for export")
	fs.BoolVar(&cfg.Redact, "redact", false, "mask secrets in exported command lines")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Keywords = fs.Args()

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := *configPath
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, set["config"] || os.Getenv("PROCTAB_CONFIG") != ""); err != nil {
			return nil, err
		}
	}

	var err error
	if set["theme"] {
		if cfg.ThemeOverride, err = theme.Parse(*themeFlag); err != nil {
			return nil, err
		}
	}
	if set["color"] {
		if cfg.Color, err = parseColorMode(*colorFlag); err != nil {
			return nil, err
		}
	}
	if set["logic"] {
		if cfg.Logic, err = search.ParseLogic(*logicFlag); err != nil {
			return nil, err
		}
	}
	if set["case"] {
		if cfg.Case, err = search.ParseCase(*caseFlag); err != nil {
			return nil, err
		}
	}
	if set["abbr"] {
		cfg.AbbrPath = *abbr
	}
	if set["desc"] {
		cfg.SortDesc = *desc
	}
	if set["sort"] {
		if k, ok := column.FindKind(*sortFlag); ok {
			cfg.SortKind = k
		} else {
			return nil, fmt.Errorf("unknown sort column %q", *sortFlag)
		}
	}

	if cfg.ExportFormat != "" && cfg.ExportOut == "" {
		return nil, errors.New("--export requires --out path")
	}
	if cfg.Interval < 100*time.Millisecond {
		cfg.Interval = 100 * time.Millisecond
	}
	return cfg, nil
}

// loadFile merges a TOML file into cfg. A missing file is only an error
// when the user named it.
func (c *Config) loadFile(path string, required bool) error {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	c.ConfigPath = path
	logx.Infof("config: loaded %s", path)

	var err error
	if c.Theme, err = theme.Parse(f.Display.Theme); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if c.Color, err = parseColorMode(f.Display.Color); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if f.Display.AbbrPath != nil {
		c.AbbrPath = *f.Display.AbbrPath
	}
	if c.Logic, err = search.ParseLogic(f.Search.Logic); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if c.Case, err = search.ParseCase(f.Search.Case); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if f.Sort.Column != "" {
		if k, ok := column.FindKind(f.Sort.Column); ok {
			c.SortKind = k
		}
	}
	switch strings.ToLower(f.Sort.Order) {
	case "ascending", "asc":
		c.SortDesc = false
	case "descending", "desc", "":
	default:
		return fmt.Errorf("config %s: unknown sort order %q", path, f.Sort.Order)
	}

	if len(f.Columns) == 0 {
		return nil
	}
	cols := make([]Column, 0, len(f.Columns))
	for _, fc := range f.Columns {
		// unknown kinds are logged by FindKind and left out
		k, ok := column.FindKind(fc.Kind)
		if !ok {
			continue
		}
		col := Column{Kind: k, Header: fc.Header}
		if fc.Align != "" {
			if col.Align, err = text.ParseAlign(fc.Align); err != nil {
				return fmt.Errorf("config %s: column %s: %w", path, fc.Kind, err)
			}
			col.explicit = true
		}
		cols = append(cols, col)
	}
	c.Columns = cols
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "proctab", "config.toml")
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func (c *Config) String() string {
	kinds := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		kinds[i] = string(col.Kind)
	}
	return fmt.Sprintf("config=%s theme=%s/%s logic=%s case=%s abbr=%v columns=%s",
		c.ConfigPath, c.ThemeOverride, c.Theme, c.Logic, c.Case, c.AbbrPath, strings.Join(kinds, ","))
}
