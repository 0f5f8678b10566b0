package workinghours

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestRepository_ListByEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM employee_working_hours WHERE employee_id = \$1 ORDER BY weekday ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "weekday", "is_working", "open_time", "close_time", "created_at", "updated_at",
		}).
			AddRow(int64(1), int64(7), 0, false, nil, nil, now, now).
			AddRow(int64(2), int64(7), 1, true, "09:00:00", "17:00:00", now, now))

	hours, err := NewRepository(db).ListByEmployee(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.False(t, hours[0].IsWorking)
	assert.True(t, hours[0].OpenTime.IsZero())
	assert.Equal(t, types.TimeString("09:00"), hours[1].OpenTime)
	assert.Equal(t, types.TimeString("17:00"), hours[1].CloseTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReplaceForEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM employee_working_hours WHERE employee_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`INSERT INTO employee_working_hours \(employee_id,weekday,is_working,open_time,close_time\) VALUES \(\$1,\$2,\$3,\$4,\$5\),\(\$6,\$7,\$8,\$9,\$10\)`).
		WithArgs(int64(7), 1, true, "09:00", "17:00", int64(7), 0, false, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = NewRepository(db).ReplaceForEmployee(context.Background(), 7, []*domain.WorkingHours{
		{Weekday: 1, IsWorking: true, OpenTime: "09:00", CloseTime: "17:00"},
		{Weekday: 0, IsWorking: false},
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
