package common

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "BINDCHAIN"

// DefaultConfigFile is read when no config file is named
const DefaultConfigFile = "config/config.yaml"

// Config contains all the configuration data for the app
type Config struct {
	AppName       string `mapstructure:"AppName" yaml:"AppName"`
	Version       string `mapstructure:"Version" yaml:"Version"`
	DebugOutput   bool   `mapstructure:"DebugOutput" yaml:"DebugOutput"`
	VerboseOutput bool   `mapstructure:"VerboseOutput" yaml:"VerboseOutput"`
	Port          string `mapstructure:"Port" yaml:"Port"`

	// Optional extra action names and action map modes
	GameDataFile string `mapstructure:"GameDataFile" yaml:"GameDataFile"`
	// Served by the defaults endpoint when set
	DefaultProfileFile string `mapstructure:"DefaultProfileFile" yaml:"DefaultProfileFile"`
	LocalizationFile   string `mapstructure:"LocalizationFile" yaml:"LocalizationFile"`
	// Debug test routes read sample.rewasd and sample-actionmaps.xml from here
	TestDataDir string `mapstructure:"TestDataDir" yaml:"TestDataDir"`

	Card CardConfig `mapstructure:"Card" yaml:"Card"`
}

// CardConfig contains the reference card layout
type CardConfig struct {
	Width            int      `mapstructure:"Width" yaml:"Width"`
	RowHeight        int      `mapstructure:"RowHeight" yaml:"RowHeight"`
	HeaderHeight     int      `mapstructure:"HeaderHeight" yaml:"HeaderHeight"`
	Inset            float64  `mapstructure:"Inset" yaml:"Inset"`
	FontSize         float64  `mapstructure:"FontSize" yaml:"FontSize"`
	MinFontSize      int      `mapstructure:"MinFontSize" yaml:"MinFontSize"`
	JpgQuality       int      `mapstructure:"JpgQuality" yaml:"JpgQuality"`
	BackgroundColour string   `mapstructure:"BackgroundColour" yaml:"BackgroundColour"`
	LightColour      string   `mapstructure:"LightColour" yaml:"LightColour"`
	DarkColour       string   `mapstructure:"DarkColour" yaml:"DarkColour"`
	AlternateColours []string `mapstructure:"AlternateColours" yaml:"AlternateColours"`
}

// LoadConfig reads defaults, then the config file if present, then
// BINDCHAIN_ environment variables (e.g. BINDCHAIN_CARD_WIDTH). PORT overrides the port when set.
// An empty path means DefaultConfigFile, which may be missing.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := len(path) > 0
	if !explicit {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if port := os.Getenv("PORT"); len(port) > 0 {
		config.Port = port
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &config, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("AppName", "BindChain")
	v.SetDefault("Version", "dev")
	v.SetDefault("Port", "8080")
	v.SetDefault("DebugOutput", false)
	v.SetDefault("VerboseOutput", false)
	v.SetDefault("GameDataFile", "")
	v.SetDefault("DefaultProfileFile", "")
	v.SetDefault("LocalizationFile", "")
	v.SetDefault("TestDataDir", "testdata")

	v.SetDefault("Card.Width", 1200)
	v.SetDefault("Card.RowHeight", 34)
	v.SetDefault("Card.HeaderHeight", 80)
	v.SetDefault("Card.Inset", 12)
	v.SetDefault("Card.FontSize", 22)
	v.SetDefault("Card.MinFontSize", 10)
	v.SetDefault("Card.JpgQuality", 85)
	v.SetDefault("Card.BackgroundColour", "#1B1F24")
	v.SetDefault("Card.LightColour", "#F2F2F2")
	v.SetDefault("Card.DarkColour", "#101214")
	v.SetDefault("Card.AlternateColours", []string{"#3D6CB9", "#00A878", "#D98E04",
		"#B23A48", "#7B4FA0", "#2F8F9D", "#8A6F4D"})
}

// Validate checks values that would make the server or card unusable
func (c *Config) Validate() error {
	if len(c.Port) == 0 {
		return errors.New("port is empty")
	}
	if c.Card.Width <= 0 || c.Card.RowHeight <= 0 {
		return fmt.Errorf("card dimensions %dx%d are invalid", c.Card.Width, c.Card.RowHeight)
	}
	if c.Card.JpgQuality < 1 || c.Card.JpgQuality > 100 {
		return fmt.Errorf("jpg quality %d is outside 1-100", c.Card.JpgQuality)
	}
	if len(c.Card.AlternateColours) == 0 {
		return errors.New("no alternate colours configured")
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
