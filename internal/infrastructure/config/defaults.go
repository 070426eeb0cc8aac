package config

import "time"

const (
	DefaultRequestTimeout    = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultScheduleInterval  = time.Hour
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultErrorBodyLimit    = 2048
)
