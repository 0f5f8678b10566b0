package commission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestClient_RecordCommission(t *testing.T) {
	var (
		gotKey  string
		gotBody RecordRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/commissions", r.URL.Path)
		gotKey = r.Header.Get(IdempotencyKeyHeader)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())

	err := client.RecordCommission(context.Background(), "key-1",
		json.RawMessage(`{"appointmentId":42,"employeeId":7,"saleAmount":1500}`))

	require.NoError(t, err)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, RecordRequest{AppointmentID: 42, EmployeeID: 7, SaleAmount: 1500}, gotBody)
}

func TestClient_RecordCommission_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "already recorded", status: http.StatusConflict},
		{name: "server error", status: http.StatusServiceUnavailable, wantErr: ErrUnavailable},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, time.Second, logger.Nop())
			err := client.RecordCommission(context.Background(), "key", json.RawMessage(`{}`))

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
