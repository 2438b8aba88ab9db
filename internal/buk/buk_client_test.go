package buk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-buk-export/internal/buk"
	"go-buk-export/internal/shared/apperror"
)

func TestEmployeesPagination(t *testing.T) {
	var gotToken, gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.Header.Get("auth_token"))
		gotQuery.Store(r.URL.RawQuery)
		w.Write([]byte(`{
			"data": [
				{"document_number": "1-9", "first_name": "Ana"},
				{"document_number": "2-7", "first_name": "Luis"}
			],
			"pagination": {"count": 42}
		}`))
	}))
	defer srv.Close()

	client := buk.New(srv.URL, "secret-token", buk.WithPageSize(50))
	records, total, err := client.Employees(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 42, total)
	assert.Equal(t, "Ana", records[0].FirstName)
	assert.Equal(t, "secret-token", gotToken.Load())
	assert.Equal(t, "page_size=50&page=3", gotQuery.Load())
}

func TestEmployeesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"first_name": "Ana"}]`))
	}))
	defer srv.Close()

	records, total, err := buk.New(srv.URL, "t").Employees(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 0, total)
}

func TestEmployeesNonListPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": "oops"}`))
	}))
	defer srv.Close()

	_, _, err := buk.New(srv.URL, "t").Employees(context.Background(), 1)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeDecodeFailed, appErr.Code)
}

func TestGetRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := buk.New(srv.URL, "t", buk.WithMaxRetries(3), buk.WithRateLimit(1000))
	_, _, err := client.Employees(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := buk.New(srv.URL, "t", buk.WithMaxRetries(3))
	_, _, err := client.Employees(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestGetUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := buk.New(srv.URL, "bad-token").ProcessPeriods(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestProcessPeriods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process_periods", r.URL.Path)
		w.Write([]byte(`{
			"data": [
				{"status": "cerrado", "month": "2024-06-01", "end_date": "2024-06-30"},
				{"status": "abierto", "start": "2024-07-01", "end_date": "2024-07-31"}
			]
		}`))
	}))
	defer srv.Close()

	periods, err := buk.New(srv.URL, "t").ProcessPeriods(context.Background())
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "2024-06-01", periods[0].Month)
	// "start" spelling feeds Month too
	assert.Equal(t, "2024-07-01", periods[1].Month)
}

func TestLatestPeriod(t *testing.T) {
	periods := []buk.Period{
		{Status: "cerrado", Month: "2024-05-01", EndDate: "2024-05-31"},
		{Status: "Cerrado", Month: "2024-06-01", EndDate: "2024-06-30"},
		{Status: "open", Month: "2024-07-01", EndDate: "2024-07-31"},
		{Status: "abierto", Month: "2024-08-01", EndDate: "2024-08-31"},
		{Status: "abierto", Month: "malformed", EndDate: "2024-09-30"},
	}

	t.Run("latest closed by end date", func(t *testing.T) {
		start, end, ok := buk.LatestPeriod(periods, buk.StatusClosed)
		require.True(t, ok)
		assert.Equal(t, "20240601", start)
		assert.Equal(t, "20240630", end)
	})

	t.Run("open accepts both spellings, skips malformed", func(t *testing.T) {
		start, end, ok := buk.LatestPeriod(periods, buk.StatusOpen)
		require.True(t, ok)
		assert.Equal(t, "20240801", start)
		assert.Equal(t, "20240831", end)
	})

	t.Run("absence reported", func(t *testing.T) {
		_, _, ok := buk.LatestPeriod(nil, buk.StatusClosed)
		assert.False(t, ok)
	})
}
