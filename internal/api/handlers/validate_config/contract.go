package validate_config

import "github.com/m04kA/SMC-TenantService/internal/service/parser"

type ConfigParser interface {
	Parse(sourceText string) parser.Result
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
