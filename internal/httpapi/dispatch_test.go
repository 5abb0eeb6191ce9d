package httpapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/app"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/news"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/storage/memory"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/weather"
)

type stubWeather struct {
	days []weather.Observation
	err  error
}

func (s stubWeather) Last7Days(_ context.Context, _ string) ([]weather.Observation, error) {
	return s.days, s.err
}

type stubNews struct {
	articles []news.Article
}

func (s stubNews) FarmingNews(_ context.Context, _ string) []news.Article {
	return s.articles
}

func newHandlerWith(t *testing.T, opts app.Options) http.Handler {
	t.Helper()
	store := memory.New()
	application := app.New(app.Stores{
		Users:     store,
		Reference: store,
		Yields:    store,
		Reports:   store,
	}, opts, nil)
	return NewHandler(application, nil)
}

func TestGetCurrentWeatherDelegatesToProvider(t *testing.T) {
	handler := newHandlerWith(t, app.Options{
		Weather: stubWeather{days: []weather.Observation{
			{MeasurementDate: "2025-04-17", CountyState: "will il", MaxTemp: 19.3},
		}},
	})

	resp := do(t, handler, http.MethodGet, "/api/query?action=getCurrentWeather&countyState=will+il", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	env := envelope(t, resp)
	days := env["result"].([]any)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %v", env)
	}
	if days[0].(map[string]any)["measurement_date"] != "2025-04-17" {
		t.Fatalf("unexpected day payload: %v", days[0])
	}
}

func TestGetCurrentWeatherRequiresCounty(t *testing.T) {
	handler := newHandlerWith(t, app.Options{Weather: stubWeather{}})

	resp := do(t, handler, http.MethodGet, "/api/query?action=getCurrentWeather", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetFarmingNewsUsesProvider(t *testing.T) {
	handler := newHandlerWith(t, app.Options{
		News: stubNews{articles: []news.Article{{Title: "Corn futures rally"}}},
	})

	resp := do(t, handler, http.MethodGet, "/api/query?action=getFarmingNews&countyState=will+il", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	env := envelope(t, resp)
	articles := env["result"].([]any)
	if len(articles) != 1 || articles[0].(map[string]any)["title"] != "Corn futures rally" {
		t.Fatalf("unexpected articles: %v", env)
	}
}

func TestGetFarmingNewsFallsBackWithoutProvider(t *testing.T) {
	handler := newHandlerWith(t, app.Options{})

	resp := do(t, handler, http.MethodGet, "/api/query?action=getFarmingNews&countyState=will+il", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	env := envelope(t, resp)
	if articles := env["result"].([]any); len(articles) != 3 {
		t.Fatalf("expected 3 fallback articles, got %v", env)
	}
}

func TestCommandCheckUserReturnsBoolean(t *testing.T) {
	handler := newHandlerWith(t, app.Options{})
	signup(t, handler, "alice", "secret1", "will il")

	resp := do(t, handler, http.MethodPost, "/api/command", map[string]any{
		"action": "checkUser",
		"params": map[string]string{"username": "alice", "password": "secret1"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env := envelope(t, resp); env["result"] != true {
		t.Fatalf("expected result true: %v", env)
	}

	resp = do(t, handler, http.MethodPost, "/api/command", map[string]any{
		"action": "checkUser",
		"params": map[string]string{"username": "alice", "password": "wrong"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("wrong password must not error, got %d", resp.Code)
	}
	if env := envelope(t, resp); env["result"] != false {
		t.Fatalf("expected result false: %v", env)
	}
}
