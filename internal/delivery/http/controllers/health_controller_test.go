package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevents/internal/delivery/http/helpers"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthController_Health(t *testing.T) {
	t.Run("healthy pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		rr := httptest.NewRecorder()
		NewHealthController(testLogger, db).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable store", func(t *testing.T) {
		down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

		rr := httptest.NewRecorder()
		NewHealthController(testLogger, down).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, helpers.ErrCodeStoreUnavailable, decodeEnvelope(t, rr, nil).Code)
	})
}
