package check_migration

import "github.com/m04kA/SMC-TenantService/internal/service/parser"

// ConfigParser интерфейс парсера документов конфигурации
type ConfigParser interface {
	Parse(sourceText string) parser.Result
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
