package config

import (
	"encoding/json"
	"os"

	"github.com/akarpov/memopad/internal/flagx"
	"github.com/akarpov/memopad/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	ApiKey         string         `json:"api_key"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration from the JSON file named by the -c/-config
// flags. If no flag is given, nothing is loaded. A file that cannot be read
// or parsed is a startup-fatal condition and panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
	if c.ApiKey != "" {
		config.ApiKey = c.ApiKey
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
