package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozadaev/agriguru/internal/models"
)

func forecastBody(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"dt_txt":"2024-06-01 %02d:00:00","main":{"temp":%d.5},"weather":[{"description":"clear sky"}]}`, i*3, 25+i)
	}
	return `{"cod":"200","list":[` + strings.Join(items, ",") + `]}`
}

func TestForecast_FirstFiveEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		assert.Equal(t, "Malda", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		fmt.Fprint(w, forecastBody(8))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "secret", nil).Forecast(context.Background(), "Malda")
	require.NoError(t, err)

	want := []models.WeatherEntry{
		{Time: "2024-06-01 00:00:00", TemperatureC: 25.5, Description: "clear sky"},
		{Time: "2024-06-01 03:00:00", TemperatureC: 26.5, Description: "clear sky"},
		{Time: "2024-06-01 06:00:00", TemperatureC: 27.5, Description: "clear sky"},
		{Time: "2024-06-01 09:00:00", TemperatureC: 28.5, Description: "clear sky"},
		{Time: "2024-06-01 12:00:00", TemperatureC: 29.5, Description: "clear sky"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Forecast mismatch (-want +got):\n%s", diff)
	}
}

func TestForecast_ShortList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, forecastBody(2))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "k", nil).Forecast(context.Background(), "Patna")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestForecast_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"city not found", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod":401}`, http.StatusUnauthorized)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"list":`)
		}},
		{"empty forecast", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, forecastBody(0))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "k", nil).Forecast(context.Background(), "Nowhere")
			assert.True(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestForecast_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k", nil).Forecast(context.Background(), "Patna")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
