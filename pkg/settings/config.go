package settings

type Config struct {
	Logger   Logger   `mapstructure:"logger"`
	Resolver Resolver `mapstructure:"resolver"`
	Row      Row      `mapstructure:"row"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress"`
}

// Resolver is the configuration for the layout resolver
type Resolver struct {
	Shards         int `mapstructure:"shards" validate:"gte=1,lte=1024"`
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"gte=1"`
}

// Row is the configuration for new row buffers
type Row struct {
	InitialCapacity int `mapstructure:"initial_capacity" validate:"gte=0"` // Bytes
}
