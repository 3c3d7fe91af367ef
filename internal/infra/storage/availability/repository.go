package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TenantService/internal/domain"
	"github.com/m04kA/SMC-TenantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TenantService/pkg/txmanager"
	"github.com/m04kA/SMC-TenantService/pkg/types"
)

// DBExecutor интерфейс исполнителя запросов (обычно *sql.DB)
type DBExecutor = txmanager.Executor

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)

var availabilityColumns = []string{"id", "business_id", "day_of_week", "exception_date", "enabled", "slots"}

// Repository репозиторий календаря доступности.
// Слоты хранятся JSON-массивом в колонке slots (jsonb).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type slotJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func marshalSlots(slots []domain.TimeSlot) ([]byte, error) {
	out := make([]slotJSON, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotJSON{Start: string(s.Start), End: string(s.End)})
	}
	return json.Marshal(out)
}

func unmarshalSlots(data []byte) ([]domain.TimeSlot, error) {
	var raw []slotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	slots := make([]domain.TimeSlot, 0, len(raw))
	for _, s := range raw {
		slots = append(slots, domain.TimeSlot{
			Start: types.TimeString(s.Start),
			End:   types.TimeString(s.End),
		})
	}
	return slots, nil
}

// Create создает строку календаря (день недели или дата-исключение)
func (r *Repository) Create(ctx context.Context, rec *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	slots, err := marshalSlots(rec.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal slots: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("availability").
		Columns(availabilityColumns...).
		Values(rec.ID, rec.BusinessID, rec.Day, rec.ExceptionDate, rec.Enabled, slots).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return rec, nil
}

// ListByBusiness возвращает все строки календаря бизнеса:
// сначала регулярные дни, затем исключения по датам
func (r *Repository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.AvailabilityRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(availabilityColumns...).
		From("availability").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("exception_date ASC NULLS FIRST, day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.AvailabilityRecord, 0)
	for rows.Next() {
		var rec domain.AvailabilityRecord
		var slots []byte
		if err := rows.Scan(&rec.ID, &rec.BusinessID, &rec.Day, &rec.ExceptionDate, &rec.Enabled, &slots); err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan row: %v", ErrScanRow, err)
		}
		rec.Slots, err = unmarshalSlots(slots)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - unmarshal slots: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows error: %v", ErrScanRow, err)
	}
	return records, nil
}
