package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Each matches its command-line flag.
const (
	KeyRecurse       = "recurse"
	KeySort          = "sort"
	KeyAppend        = "append"
	KeyOutput        = "output"
	KeyExclude       = "exclude"
	KeyLanguageForce = "language-force"
	KeyLinks         = "links"
	KeyTotals        = "totals"
	KeyVerbose       = "verbose"
	KeyStore         = "store"
)

// DefaultOutput is the tag file written when none is configured.
const DefaultOutput = "tags"

// NewViper returns a viper instance with defaults set and CTAGS_* environment
// variables bound ("language-force" reads CTAGS_LANGUAGE_FORCE).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRecurse, false)
	v.SetDefault(KeySort, true)
	v.SetDefault(KeyAppend, false)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyLanguageForce, "")
	v.SetDefault(KeyLinks, true)
	v.SetDefault(KeyTotals, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyStore, false)

	v.SetEnvPrefix("CTAGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadEnvFile loads KEY=value pairs from dir/.env into the environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(dir string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ReadConfig reads configFile, or when empty searches for .ctags.toml in
// dir and then $HOME/.config/ctags. It returns the file used, "" if none
// was found.
func ReadConfig(v *viper.Viper, configFile, dir string) (string, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return "", fmt.Errorf("read config: %w", err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".ctags")
		v.SetConfigType("toml")
		v.AddConfigPath(dir)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ctags"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// OptionsFrom builds run options from the merged configuration.
func OptionsFrom(v *viper.Viper) Options {
	return Options{
		Recurse:       v.GetBool(KeyRecurse),
		Sorted:        v.GetBool(KeySort),
		Append:        v.GetBool(KeyAppend),
		FollowLinks:   v.GetBool(KeyLinks),
		Exclude:       v.GetStringSlice(KeyExclude),
		ForceLanguage: v.GetString(KeyLanguageForce),
	}
}
