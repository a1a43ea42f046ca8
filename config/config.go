package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/file-organizer/internal"
)

type Config struct {
	Organize struct {
		Time     string
		Small    string
		Medium   string
		Sniff    bool
		Workers  int
		Location string
	}
	Logging struct {
		Level string
		File  string
	}
}

// Load 读取配置文件和 FILE_ORGANIZER_ 开头的环境变量。
// configFile 为空时在默认路径中查找 config.yaml，找不到则使用默认值。
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.file-organizer")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/file-organizer")
	}

	v.SetEnvPrefix("FILE_ORGANIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("organize.time", string(internal.TimeCreation))
	v.SetDefault("organize.small", "1")
	v.SetDefault("organize.medium", "10")
	v.SetDefault("organize.sniff", false)
	v.SetDefault("organize.workers", internal.DefaultWorkers)
	v.SetDefault("organize.location", "Local")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
