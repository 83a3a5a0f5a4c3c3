package config

import (
	"flag"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Choice is a string flag restricted to a fixed set of values.
// It implements the flag.Value interface.
type Choice struct {
	Allowed []string
	Value   string
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-mode init|calc|check phase to run
//	-profile homomorphic parameter profile for init
//	-strategy sequential|pool execution strategy
//	-workers pool size
//	-progress-interval how often calc progress is logged (e.g. "5s")
//	-secret private bundle path
//	-public public bundle path
//	-remote-public other party's public bundle path
//	-result result bundle path
//	-remote-result received result bundle path
//	-d journal DSN ("off" disables the journal)
//	-zstd-level fastest|default|better|best
//	-base-url identity provider API root
//	-request-timeout identity provider request timeout (e.g. "30s")
//	-log-level zerolog level
//	-clipboard copy revealed friends to the clipboard
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	mode := &Choice{Allowed: []string{ModeInit, ModeCalc, ModeCheck, ModeHistory}}
	strategy := &Choice{Allowed: []string{StrategySequential, StrategyPool}}
	zstdLevel := &Choice{Allowed: []string{"fastest", "default", "better", "best"}}
	var profile string
	var workers int
	var progressInterval time.Duration
	var secretPath, publicPath, remotePublicPath, resultPath, remoteResultPath string
	var databaseDSN string
	var baseURL string
	var requestTimeout time.Duration
	var logLevel string
	var clipboard bool
	var jsonConfigPath string

	flag.Var(mode, "mode", "Phase to run: init, calc, check or history")
	flag.StringVar(&profile, "profile", "", "Homomorphic parameter profile for init")
	flag.Var(strategy, "strategy", "Execution strategy: sequential or pool")
	flag.IntVar(&workers, "workers", 0, "Pool size")
	flag.DurationVar(&progressInterval, "progress-interval", 0, "Progress log interval (e.g., 5s)")
	flag.StringVar(&secretPath, "secret", "", "Private bundle path")
	flag.StringVar(&publicPath, "public", "", "Public bundle path")
	flag.StringVar(&remotePublicPath, "remote-public", "", "Other party's public bundle path")
	flag.StringVar(&resultPath, "result", "", "Result bundle path")
	flag.StringVar(&remoteResultPath, "remote-result", "", "Received result bundle path")
	flag.StringVar(&databaseDSN, "d", "", "Journal DSN")
	flag.Var(zstdLevel, "zstd-level", "Bundle compression level")
	flag.StringVar(&baseURL, "base-url", "", "Identity provider API root")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.BoolVar(&clipboard, "clipboard", false, "Copy revealed friends to the clipboard")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Mode:      mode.Value,
			LogLevel:  logLevel,
			Clipboard: clipboard,
		},
		Storage: Storage{
			Files: Files{
				SecretPath:       secretPath,
				PublicPath:       publicPath,
				RemotePublicPath: remotePublicPath,
				ResultPath:       resultPath,
				RemoteResultPath: remoteResultPath,
			},
			DB: DB{
				DSN: databaseDSN,
			},
			CompressionLevel: zstdLevel.Value,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			Strategy:         strategy.Value,
			Count:            workers,
			ProgressInterval: progressInterval,
		},
		Crypto: Crypto{
			Profile: profile,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the selected value, or an empty string.
func (c *Choice) String() string {
	if c == nil {
		return ""
	}
	return c.Value
}

// Set accepts s if it is one of the allowed values (case-insensitive).
func (c *Choice) Set(s string) error {
	v := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(c.Allowed, v) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(c.Allowed, ", "))
	}
	c.Value = v
	return nil
}
