package config

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when the file omits fields.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			SkipDirs: []string{},
		},
		Server: ServerConfig{
			Addr:                  ":8080",
			MaxUploadMB:           64,
			RequestTimeoutSeconds: 120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Disabled: false,
		},
	}
}

// Merge merges loaded config with defaults. Values from the loaded config
// take precedence; zero values fall back to defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Server = mergeServerConfig(loaded.Server, defaults.Server)
	result.Log = mergeLogConfig(loaded.Log, defaults.Log)
	result.History = loaded.History
	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := defaults
	if len(loaded.SkipDirs) > 0 {
		result.SkipDirs = loaded.SkipDirs
	}
	return result
}

func mergeServerConfig(loaded, defaults ServerConfig) ServerConfig {
	result := defaults
	if loaded.Addr != "" {
		result.Addr = loaded.Addr
	}
	if loaded.MaxUploadMB > 0 {
		result.MaxUploadMB = loaded.MaxUploadMB
	}
	if loaded.RequestTimeoutSeconds > 0 {
		result.RequestTimeoutSeconds = loaded.RequestTimeoutSeconds
	}
	return result
}

func mergeLogConfig(loaded, defaults LogConfig) LogConfig {
	result := defaults
	if loaded.Level != "" {
		result.Level = loaded.Level
	}
	if loaded.Format != "" {
		result.Format = loaded.Format
	}
	return result
}
