package availabilityrule

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

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO availability_rules").
		WithArgs(int64(7), "2025-10-20", "2025-10-24", domain.RuleKindBlock, nil, nil, "vacation").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	reason := "vacation"
	rule, err := NewRepository(db).Create(context.Background(), &domain.AvailabilityRule{
		EmployeeID: 7,
		DateStart:  time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		DateEnd:    time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC),
		Kind:       domain.RuleKindBlock,
		Reason:     &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), rule.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM availability_rules WHERE employee_id = \$1 AND date_end >= \$2 AND date_start <= \$3`).
		WithArgs(int64(7), "2025-10-20", "2025-10-26").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "date_start", "date_end", "kind", "open_time", "close_time", "reason", "created_at",
		}).AddRow(int64(5), int64(7), from, from, "override_hours", "12:00:00", "20:00:00", nil, now))

	rules, err := NewRepository(db).ListByEmployee(context.Background(), 7, &from, &to)

	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.RuleKindOverrideHours, rules[0].Kind)
	assert.Equal(t, types.TimeString("12:00"), rules[0].OpenTime)
	assert.Nil(t, rules[0].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM availability_rules WHERE employee_id = \$1 AND id = \$2`).
		WithArgs(int64(7), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Delete(context.Background(), 7, 99)

	assert.ErrorIs(t, err, ErrRuleNotFound)
}
