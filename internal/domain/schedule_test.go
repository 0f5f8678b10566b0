package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkingHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		wh      WorkingHours
		wantErr error
	}{
		{name: "working day", wh: WorkingHours{Weekday: 1, IsWorking: true, OpenTime: "09:00", CloseTime: "17:00"}},
		{name: "day off ignores hours", wh: WorkingHours{Weekday: 0, IsWorking: false}},
		{name: "weekday out of range", wh: WorkingHours{Weekday: 7, IsWorking: true, OpenTime: "09:00", CloseTime: "17:00"}, wantErr: ErrInvalidWeekday},
		{name: "close equals open", wh: WorkingHours{Weekday: 2, IsWorking: true, OpenTime: "09:00", CloseTime: "09:00"}, wantErr: ErrInvalidTimeRange},
		{name: "close before open", wh: WorkingHours{Weekday: 2, IsWorking: true, OpenTime: "18:00", CloseTime: "09:00"}, wantErr: ErrInvalidTimeRange},
		{name: "missing hours", wh: WorkingHours{Weekday: 3, IsWorking: true}, wantErr: ErrMissingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wh.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAvailabilityRule_Validate(t *testing.T) {
	block := AvailabilityRule{Kind: RuleKindBlock, DateStart: date("2025-10-20"), DateEnd: date("2025-10-20")}
	assert.NoError(t, block.Validate())

	reversed := AvailabilityRule{Kind: RuleKindBlock, DateStart: date("2025-10-21"), DateEnd: date("2025-10-20")}
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidDateRange)

	override := AvailabilityRule{Kind: RuleKindOverrideHours, DateStart: date("2025-10-20"), DateEnd: date("2025-10-20"),
		OpenTime: "12:00", CloseTime: "11:00"}
	assert.ErrorIs(t, override.Validate(), ErrInvalidTimeRange)

	unknown := AvailabilityRule{Kind: "vacation", DateStart: date("2025-10-20"), DateEnd: date("2025-10-20")}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidRuleKind)
}

func TestAvailabilityRule_CoversAndIntersects(t *testing.T) {
	vacation := &AvailabilityRule{DateStart: date("2025-10-20"), DateEnd: date("2025-10-24")}

	loc := time.FixedZone("MSK", 3*60*60)
	assert.True(t, vacation.Covers(time.Date(2025, 10, 20, 0, 0, 0, 0, loc)))
	assert.True(t, vacation.Covers(time.Date(2025, 10, 24, 23, 30, 0, 0, loc)))
	assert.False(t, vacation.Covers(time.Date(2025, 10, 25, 0, 0, 0, 0, loc)))

	assert.True(t, vacation.Intersects(&AvailabilityRule{DateStart: date("2025-10-24"), DateEnd: date("2025-10-26")}))
	assert.False(t, vacation.Intersects(&AvailabilityRule{DateStart: date("2025-10-25"), DateEnd: date("2025-10-26")}))
}
