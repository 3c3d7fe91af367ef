package business

import "github.com/m04kA/SMC-TenantService/pkg/txmanager"

// DBExecutor интерфейс исполнителя запросов (обычно *sql.DB)
type DBExecutor = txmanager.Executor
