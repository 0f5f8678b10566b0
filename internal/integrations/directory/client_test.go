package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestClient_GetEmployee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/internal/employees/7" {
			_, _ = w.Write([]byte(`{"id":7,"salonId":3,"isActive":false}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())

	employee, err := client.GetEmployee(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), employee.SalonID)
	assert.False(t, employee.IsActive)

	_, err = client.GetEmployee(context.Background(), 8)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestClient_GetEmployee_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, 100*time.Millisecond, logger.Nop())

	_, err := client.GetEmployee(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInternal)
}
