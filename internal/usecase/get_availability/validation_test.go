package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest_ComparesDatesInSalonLocation(t *testing.T) {
	from := time.Date(2025, 10, 20, 0, 0, 0, 0, msk)

	tests := []struct {
		name    string
		to      time.Time
		wantErr bool
	}{
		{
			// 2025-10-19 22:00 UTC это 2025-10-20 01:00 по Москве
			name: "same salon day given in UTC",
			to:   time.Date(2025, 10, 19, 22, 0, 0, 0, time.UTC),
		},
		{
			name:    "previous salon day",
			to:      time.Date(2025, 10, 19, 20, 0, 0, 0, time.UTC),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&Request{EmployeeID: 7, ServiceID: 11, From: from, To: tt.to}, msk)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
