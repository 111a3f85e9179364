package config

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backup  BackupConfig  `yaml:"backup"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	DataDir string `yaml:"dataDir"`
}

type BackupConfig struct {
	WALMethod   string `yaml:"walMethod"`   // "fetch" or "stream"
	KeepBackups int    `yaml:"keepBackups"` // base backups kept after pruning
	Schedule    string `yaml:"schedule"`    // cron expression, empty = one-shot
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "console"
}

// Default returns the configuration used when no file is given.
// Every field has a working value, so the tools run without any config.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DataDir: "/var/lib/postgresql/data",
		},
		Backup: BackupConfig{
			WALMethod:   "fetch",
			KeepBackups: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
