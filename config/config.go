package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Game     GameConfig     `mapstructure:"game"`
	Net      NetConfig      `mapstructure:"net"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

type DataConfig struct {
	LevelsPath  string `mapstructure:"levels_path"`
	WeaponsPath string `mapstructure:"weapons_path"`
}

type GameConfig struct {
	TickMs       int     `mapstructure:"tick_ms"`
	MaxDTSeconds float64 `mapstructure:"max_dt_s"`
	// Difficulty selects the enemy behavior set: "standard" runs the full
	// patrol/investigate/search machine, "aggressive" tracks and fires
	// whenever the player is visible.
	Difficulty     string        `mapstructure:"difficulty"`
	EnemySeed      int64         `mapstructure:"enemy_seed"`
	ReactionDelayS float64       `mapstructure:"reaction_delay_s"`
	RoomIdleTTL    time.Duration `mapstructure:"room_idle_ttl"`
}

type NetConfig struct {
	// UpdateRate caps outbound player-update messages per second.
	UpdateRate  float64 `mapstructure:"update_rate"`
	UpdateBurst int     `mapstructure:"update_burst"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("data.levels_path", "./data/levels.json")
	v.SetDefault("data.weapons_path", "./data/weapons.json")
	v.SetDefault("game.tick_ms", 16)
	v.SetDefault("game.max_dt_s", 0.1)
	v.SetDefault("game.difficulty", "standard")
	v.SetDefault("game.enemy_seed", 0)
	v.SetDefault("game.reaction_delay_s", 0.35)
	v.SetDefault("game.room_idle_ttl", "10m")
	v.SetDefault("net.update_rate", 20)
	v.SetDefault("net.update_burst", 40)
	v.SetDefault("security.rate_limit_rps", 50)
	v.SetDefault("security.rate_limit_burst", 100)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no config file is
// present. The host must stay runnable with zero external input.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Data:     DataConfig{LevelsPath: "./data/levels.json", WeaponsPath: "./data/weapons.json"},
		Game:     GameConfig{TickMs: 16, MaxDTSeconds: 0.1, Difficulty: "standard", ReactionDelayS: 0.35, RoomIdleTTL: 10 * time.Minute},
		Net:      NetConfig{UpdateRate: 20, UpdateBurst: 40},
		Security: SecurityConfig{RateLimitRPS: 50, RateLimitBurst: 100},
	}
}
