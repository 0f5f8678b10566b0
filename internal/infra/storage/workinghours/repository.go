package workinghours

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий недельного расписания сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByEmployee получает недельный шаблон сотрудника, отсортированный по дню недели
func (r *Repository) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"employee_id",
		"weekday",
		"is_working",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("employee_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployee - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		var wh domain.WorkingHours
		if err := rows.Scan(
			&wh.ID,
			&wh.EmployeeID,
			&wh.Weekday,
			&wh.IsWorking,
			&wh.OpenTime,
			&wh.CloseTime,
			&wh.CreatedAt,
			&wh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByEmployee - scan row: %w", ErrScanRow, err)
		}
		hours = append(hours, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmployee - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceForEmployee заменяет недельный шаблон сотрудника целиком
// Должен вызываться внутри транзакции, чтобы удаление и вставка были атомарны
func (r *Repository) ReplaceForEmployee(ctx context.Context, employeeID int64, hours []*domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForEmployee - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForEmployee - execute delete: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("employee_working_hours").
		Columns("employee_id", "weekday", "is_working", "open_time", "close_time")

	for _, wh := range hours {
		insertBuilder = insertBuilder.Values(employeeID, wh.Weekday, wh.IsWorking, wh.OpenTime, wh.CloseTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForEmployee - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForEmployee - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
