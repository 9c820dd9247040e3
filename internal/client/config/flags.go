package config

import (
	"flag"
	"os"

	"github.com/akarpov/memopad/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   backend base URL
//	-k string   shared API access key
//
// Args are pre-filtered with flagx.FilterArgs so the loader ignores flags
// owned by other components (e.g. -c/-config handled by the JSON overlay).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BaseURL, "u", config.BaseURL, "backend base URL")
	fs.StringVar(&config.ApiKey, "k", config.ApiKey, "API access key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
