package readiness

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabasePing_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	probe := DatabasePing(&store.DB{DB: db})

	assert.NoError(t, probe(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabasePing_Failure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(assert.AnError)

	probe := DatabasePing(&store.DB{DB: db})

	assert.Error(t, probe(context.Background()))
}

func TestServerHealth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ping":"pong!"}`))
	}))
	defer srv.Close()

	client := NewHealthClient(srv.URL, time.Second)
	probe := ServerHealth(client, "/ping")

	assert.NoError(t, probe(context.Background()))
}

func TestServerHealth_Non2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHealthClient(srv.URL, time.Second)
	probe := ServerHealth(client, "/ping")

	err := probe(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestServerHealth_ConnectionRefused(t *testing.T) {
	// A server that is closed immediately guarantees a refused connection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewHealthClient(url, 500*time.Millisecond)
	probe := ServerHealth(client, "/ping")

	assert.Error(t, probe(context.Background()))
}

func TestServerHealth_WorksWithWaiter(t *testing.T) {
	// The server starts answering after the second probe, exercising the
	// waiter+probe composition used before seeding.
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHealthClient(srv.URL, time.Second)
	w := NewWaiter("server", ServerHealth(client, "/ping"), RetryPolicy{MaxAttempts: 5, Interval: time.Millisecond}, logger.Nop())

	require.NoError(t, w.Wait(context.Background()))
	assert.Equal(t, 3, hits)
}
