package invalidate_config

type CacheInvalidator interface {
	Invalidate(tenantKey string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
