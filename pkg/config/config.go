package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Log         struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Item struct {
		GuildID  string `yaml:"guild_id"`
		Name     string `yaml:"name" default:"Tesla Stock"`
		ItemID   string `yaml:"item_id"` // optional; skips the name lookup
		Token    string `yaml:"token"`
		APIBase  string `yaml:"api_base" default:"https://unbelievaboat.com/api/v1"`
		PagesURL string `yaml:"pages_url"`
		Unit     string `yaml:"unit" default:"chips"`
		Symbol   string `yaml:"symbol" default:"TSLA"`
	} `yaml:"item"`
	Model struct {
		StartPrice float64 `yaml:"start_price" default:"10000"`
		Drift      float64 `yaml:"drift" default:"0.0002"`
		Vol        float64 `yaml:"vol" default:"0.03"`
		MinPrice   int64   `yaml:"min_price" default:"1"`
		Anchor     float64 `yaml:"anchor" default:"1000"`
		RevertK    float64 `yaml:"revert_k" default:"0.12"`
	} `yaml:"model"`
	Shocks struct {
		IntervalRanges [][2]int `yaml:"interval_ranges"`
		PctMin         float64  `yaml:"pct_min" default:"0.10"`
		PctMax         float64  `yaml:"pct_max" default:"0.25"`
		UpProb         float64  `yaml:"up_prob" default:"0.35"`
	} `yaml:"shocks"`
	Bear struct {
		Prob    float64 `yaml:"prob" default:"0.15"`
		DaysMin int     `yaml:"days_min" default:"2"`
		DaysMax int     `yaml:"days_max" default:"5"`
		Drift   float64 `yaml:"drift" default:"-0.002"`
		Vol     float64 `yaml:"vol" default:"0.05"`
	} `yaml:"bear"`
	Decay struct {
		Weekday string  `yaml:"weekday" default:"sunday"`
		Pct     float64 `yaml:"pct" default:"0.01"`
	} `yaml:"decay"`
	Backfill struct {
		Days int   `yaml:"days" default:"30"`
		Seed int64 `yaml:"seed" default:"42"`
	} `yaml:"backfill"`
	Storage struct {
		HistoryPath string `yaml:"history_path" default:"docs/history.json"`
		StatePath   string `yaml:"state_path" default:".data/meta.json"`
		PagePath    string `yaml:"page_path" default:"docs/index.html"`
	} `yaml:"storage"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Publish struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		Timeout time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"publish"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl" default:"15s"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Archive struct {
		Backends []string `yaml:"backends"` // any of: kafka, clickhouse
		Kafka    struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic" default:"chiptick.ticks"`
			RequiredAcks int           `yaml:"required_acks" default:"-1"`
			Compression  string        `yaml:"compression" default:"gzip"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Host        string        `yaml:"host"`
			Port        int           `yaml:"port" default:"9000"`
			Database    string        `yaml:"database" default:"chiptick"`
			Table       string        `yaml:"table" default:"ticks"`
			User        string        `yaml:"user" default:"default"`
			Password    string        `yaml:"password"`
			DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
		} `yaml:"clickhouse"`
	} `yaml:"archive"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Defaults are applied before parsing so the YAML wins outright:
	// explicit zeros and falses are settings, not gaps to fill.
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	c.Shocks.IntervalRanges = [][2]int{{2, 3}, {4, 5}}

	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("UNB_TOKEN"); v != "" {
		c.Item.Token = v
	}
	if v := os.Getenv("UNB_GUILD_ID"); v != "" {
		c.Item.GuildID = v
	}
	if v := os.Getenv("UNB_ITEM_NAME"); v != "" {
		c.Item.Name = v
	}
	if v := os.Getenv("UNB_ITEM_ID"); v != "" {
		c.Item.ItemID = v
	}
	if v := os.Getenv("PAGES_URL"); v != "" {
		c.Item.PagesURL = v
	}
	if v := os.Getenv("ARCHIVE_BACKENDS"); v != "" {
		c.Archive.Backends = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Model.StartPrice <= 0 {
		return fmt.Errorf("model.start_price must be positive")
	}
	if c.Model.Anchor <= 0 {
		return fmt.Errorf("model.anchor must be positive")
	}
	if c.Model.MinPrice < 1 {
		return fmt.Errorf("model.min_price must be at least 1")
	}
	if c.Shocks.PctMin < 0 || c.Shocks.PctMax < c.Shocks.PctMin {
		return fmt.Errorf("shocks.pct_min/pct_max range is invalid")
	}
	if c.Shocks.UpProb < 0 || c.Shocks.UpProb > 1 {
		return fmt.Errorf("shocks.up_prob must be in [0,1]")
	}
	if len(c.Shocks.IntervalRanges) == 0 {
		return fmt.Errorf("shocks.interval_ranges must not be empty")
	}
	for _, r := range c.Shocks.IntervalRanges {
		if r[0] < 1 || r[1] < r[0] {
			return fmt.Errorf("shocks.interval_ranges entry [%d,%d] is invalid", r[0], r[1])
		}
	}
	if c.Bear.Prob < 0 || c.Bear.Prob > 1 {
		return fmt.Errorf("bear.prob must be in [0,1]")
	}
	if c.Bear.DaysMin < 1 || c.Bear.DaysMax < c.Bear.DaysMin {
		return fmt.Errorf("bear.days_min/days_max range is invalid")
	}
	if _, err := ParseWeekday(c.Decay.Weekday); err != nil {
		return err
	}
	if c.Decay.Pct < 0 || c.Decay.Pct >= 1 {
		return fmt.Errorf("decay.pct must be in [0,1)")
	}
	if c.Backfill.Days < 2 {
		return fmt.Errorf("backfill.days must be at least 2")
	}
	for _, b := range c.Archive.Backends {
		switch b {
		case "kafka", "clickhouse":
		default:
			return fmt.Errorf("archive.backends must contain only 'kafka' or 'clickhouse', got '%s'", b)
		}
	}
	return nil
}

// ParseWeekday maps a lowercase weekday name to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("decay.weekday '%s' is not a weekday name", s)
}
