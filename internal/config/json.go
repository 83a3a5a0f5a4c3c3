package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Mode       string `json:"mode"`
		Passphrase string `json:"passphrase"`
		LogLevel   string `json:"log_level"`
		Clipboard  bool   `json:"clipboard"`
	} `json:"app,omitempty"`

	Storage struct {
		Files struct {
			Secret       string `json:"secret"`
			Public       string `json:"public"`
			RemotePublic string `json:"remote_public"`
			Result       string `json:"result"`
			RemoteResult string `json:"remote_result"`
		} `json:"files,omitempty"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		CompressionLevel string `json:"compression_level"`
		MaxDecodedSize   uint64 `json:"max_decoded_size"`
	} `json:"storage,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		Strategy         string   `json:"strategy"`
		Count            int      `json:"count"`
		ProgressInterval Duration `json:"progress_interval"`
	} `json:"workers,omitempty"`

	Crypto struct {
		Profile string `json:"profile"`
	} `json:"crypto,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Mode:       jsonCfg.App.Mode,
			Passphrase: jsonCfg.App.Passphrase,
			LogLevel:   jsonCfg.App.LogLevel,
			Clipboard:  jsonCfg.App.Clipboard,
		},
		Storage: Storage{
			Files: Files{
				SecretPath:       jsonCfg.Storage.Files.Secret,
				PublicPath:       jsonCfg.Storage.Files.Public,
				RemotePublicPath: jsonCfg.Storage.Files.RemotePublic,
				ResultPath:       jsonCfg.Storage.Files.Result,
				RemoteResultPath: jsonCfg.Storage.Files.RemoteResult,
			},
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			CompressionLevel: jsonCfg.Storage.CompressionLevel,
			MaxDecodedSize:   jsonCfg.Storage.MaxDecodedSize,
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			Strategy:         jsonCfg.Workers.Strategy,
			Count:            jsonCfg.Workers.Count,
			ProgressInterval: time.Duration(jsonCfg.Workers.ProgressInterval),
		},
		Crypto: Crypto{
			Profile: jsonCfg.Crypto.Profile,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
