package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gubarz/chatmd/internal/include"
)

// Config holds the application configuration
type Config struct {
	Dir             string `mapstructure:"dir"`
	MaxIncludeFiles int    `mapstructure:"max_include_files"`
	Output          string `mapstructure:"output"`
	LogLevel        string `mapstructure:"log_level"`
	ColorUser       string `mapstructure:"color_user"`
	ColorAssistant  string `mapstructure:"color_assistant"`
	ColorSystem     string `mapstructure:"color_system"`
	ColorOther      string `mapstructure:"color_other"`
	ColorDim        string `mapstructure:"color_dim"`
	ColorBorder     string `mapstructure:"color_border"`
	ColorSelected   string `mapstructure:"color_selected"`
	ColorCursor     string `mapstructure:"color_cursor"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("dir", "")
	viper.SetDefault("max_include_files", include.DefaultMaxFiles)
	viper.SetDefault("output", "") // Picked from the terminal when empty
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("color_user", "32")      // Green
	viper.SetDefault("color_assistant", "36") // Cyan
	viper.SetDefault("color_system", "33")    // Yellow
	viper.SetDefault("color_other", "35")     // Magenta
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_selected", "236")
	viper.SetDefault("color_cursor", "212")

	viper.SetConfigName("chatmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "chatmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CHATMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetDir returns the include base directory with tilde expansion
func GetDir() string {
	return expandTilde(viper.GetString("dir"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetMaxIncludeFiles returns the include limit per parse
func GetMaxIncludeFiles() int {
	return viper.GetInt("max_include_files")
}

// GetOutput returns the output format
func GetOutput() string {
	return viper.GetString("output")
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return viper.GetString("log_level")
}

// GetRoleColor returns the ANSI color code for a message role
func GetRoleColor(role string) string {
	switch role {
	case "user":
		return viper.GetString("color_user")
	case "assistant":
		return viper.GetString("color_assistant")
	case "system":
		return viper.GetString("color_system")
	default:
		return viper.GetString("color_other")
	}
}

// GetColorDim returns the color for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns the color for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorSelected returns the background color of the selected row
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// GetColorCursor returns the color of the list cursor
func GetColorCursor() string {
	return viper.GetString("color_cursor")
}

// SetOutput sets output format at runtime
func SetOutput(format string) {
	viper.Set("output", format)
	C.Output = format
}

// SetDir sets the include base directory at runtime
func SetDir(dir string) {
	viper.Set("dir", dir)
	C.Dir = dir
}

// SetMaxIncludeFiles sets the include limit at runtime
func SetMaxIncludeFiles(n int) {
	viper.Set("max_include_files", n)
	C.MaxIncludeFiles = n
}

// SetLogLevel sets the log level at runtime
func SetLogLevel(level string) {
	viper.Set("log_level", level)
	C.LogLevel = level
}
