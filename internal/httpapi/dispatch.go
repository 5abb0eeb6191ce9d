package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/domain/yield"
	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/httputil"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/metrics"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/news"
)

// queryFunc handles one GET action. Parameters arrive as query values.
type queryFunc func(ctx context.Context, params url.Values) (any, error)

// commandFunc handles one POST action. Parameters arrive as the raw JSON
// of the body's params field, decoded into the action's own shape.
type commandFunc func(ctx context.Context, params json.RawMessage) (any, error)

// query dispatches GET /api/query?action=... through the typed registry.
func (h *handler) query(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	fn, ok := h.queries[action]
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "unknown GET action")
		return
	}

	start := time.Now()
	result, err := fn(r.Context(), r.URL.Query())
	metrics.RecordAction(action, time.Since(start), err == nil)

	if err != nil {
		h.log.WithError(err).WithField("action", action).Warn("query action failed")
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, result)
}

// command dispatches POST /api/command bodies of the form {action, params}.
func (h *handler) command(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string          `json:"action"`
		Params json.RawMessage `json:"params"`
	}
	if err := httputil.ReadJSON(r, &body); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	fn, ok := h.commands[body.Action]
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "unknown POST action")
		return
	}

	start := time.Now()
	result, err := fn(r.Context(), body.Params)
	metrics.RecordAction(body.Action, time.Since(start), err == nil)

	if err != nil {
		h.log.WithError(err).WithField("action", body.Action).Warn("command action failed")
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, result)
}

// =============================================================================
// GET action registry
// =============================================================================

func (h *handler) queryRegistry() map[string]queryFunc {
	return map[string]queryFunc{
		"getCounties": func(ctx context.Context, _ url.Values) (any, error) {
			return h.app.Reference.Counties(ctx)
		},
		"getUserInfo": func(ctx context.Context, params url.Values) (any, error) {
			username := params.Get("username")
			if username == "" {
				return nil, apperrors.Validation("username is required")
			}
			acct, err := h.app.Users.Get(ctx, username)
			if apperrors.Is(err, apperrors.CodeNotFound) {
				// The dashboard treats an unknown user as an empty
				// result, not a failure.
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return acct, nil
		},
		"getCurrentWeather": func(ctx context.Context, params url.Values) (any, error) {
			countyState := params.Get("countyState")
			if countyState == "" {
				return nil, apperrors.Validation("county and state are required")
			}
			if h.app.Weather == nil {
				return nil, apperrors.Internal("weather provider not configured", nil)
			}
			return h.app.Weather.Last7Days(ctx, countyState)
		},
		"getYields": func(ctx context.Context, params url.Values) (any, error) {
			username := params.Get("username")
			if username == "" {
				return nil, apperrors.Validation("username is required")
			}
			return h.app.Yields.ListByUser(ctx, username)
		},
		"getAuditLogs": func(ctx context.Context, params url.Values) (any, error) {
			username := params.Get("username")
			if username == "" {
				return nil, apperrors.Validation("username is required")
			}
			limit := 10
			if raw := params.Get("limit"); raw != "" {
				if n, err := strconv.Atoi(raw); err == nil {
					limit = n
				}
			}
			return h.app.Yields.AuditLogs(ctx, username, limit)
		},
		"getFarmingNews": func(ctx context.Context, params url.Values) (any, error) {
			countyState := params.Get("countyState")
			if countyState == "" {
				return nil, apperrors.Validation("county and state are required")
			}
			if h.app.News == nil {
				return news.FallbackArticles(), nil
			}
			return h.app.News.FarmingNews(ctx, countyState), nil
		},
		"getSoilData": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reference.SoilData(ctx, params.Get("countyState"))
		},
		"getAvailableDates": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reference.AvailableDates(ctx, params.Get("countyState"))
		},
		"getClimateData": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reference.ClimateData(ctx, params.Get("countyState"), params.Get("measurementDate"))
		},
		"checkUser": func(ctx context.Context, params url.Values) (any, error) {
			username := params.Get("username")
			password := params.Get("password")
			if username == "" || password == "" {
				return nil, apperrors.Validation("username and password are required")
			}
			_, ok, err := h.app.Users.Authenticate(ctx, username, password)
			if err != nil {
				return nil, err
			}
			return ok, nil
		},
		"cropAdvancedQuery": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reports.CropClimateSummary(ctx, params.Get("username"))
		},
		"getAvgEnvData": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reports.EnvAverages(ctx, params.Get("countyState"))
		},
		"cropAdminComparison": func(ctx context.Context, params url.Values) (any, error) {
			return h.app.Reports.AdminCropComparison(ctx, params.Get("username"), params.Get("countyState"))
		},
	}
}

// =============================================================================
// POST action registry
// =============================================================================

// yieldParams is the wire shape of a yield record in command bodies.
type yieldParams struct {
	CropType        string  `json:"crop_type"`
	MeasurementDate string  `json:"measurement_date"`
	YieldAcre       float64 `json:"yieldacre"`
	Username        string  `json:"username"`
	CountyState     string  `json:"county_state"`
}

func (p yieldParams) record() yield.Record {
	return yield.Record{
		Username:        p.Username,
		CropType:        p.CropType,
		MeasurementDate: p.MeasurementDate,
		CountyState:     p.CountyState,
		YieldAcre:       p.YieldAcre,
	}
}

func (p yieldParams) key() yield.Key {
	return yield.Key{
		Username:        p.Username,
		CropType:        p.CropType,
		MeasurementDate: p.MeasurementDate,
		CountyState:     p.CountyState,
	}
}

func (h *handler) commandRegistry() map[string]commandFunc {
	checkUser := func(ctx context.Context, raw json.RawMessage) (any, error) {
		var p struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decodeParams(raw, &p); err != nil {
			return nil, err
		}
		if p.Username == "" || p.Password == "" {
			return nil, apperrors.Validation("username and password are required")
		}
		_, ok, err := h.app.Users.Authenticate(ctx, p.Username, p.Password)
		if err != nil {
			return nil, err
		}
		return ok, nil
	}

	editYield := func(ctx context.Context, raw json.RawMessage) (any, error) {
		var p yieldParams
		if err := decodeParams(raw, &p); err != nil {
			return nil, err
		}
		affected, err := h.app.Yields.Update(ctx, p.key(), p.YieldAcre)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"affected_rows": affected}, nil
	}

	return map[string]commandFunc{
		"checkUser": checkUser,
		"login":     checkUser,
		"createUser": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p struct {
				Username    string `json:"username"`
				Password    string `json:"password"`
				CountyState string `json:"county_state"`
			}
			if err := decodeParams(raw, &p); err != nil {
				return nil, err
			}
			if err := h.app.Users.Register(ctx, p.Username, p.Password, p.CountyState); err != nil {
				return nil, err
			}
			return map[string]string{"message": "user registered successfully"}, nil
		},
		"updateUser": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p struct {
				Username    string `json:"username"`
				CountyState string `json:"county_state"`
			}
			if err := decodeParams(raw, &p); err != nil {
				return nil, err
			}
			if err := h.app.Users.UpdateCounty(ctx, p.Username, p.CountyState); err != nil {
				return nil, err
			}
			return map[string]string{"message": "user updated successfully"}, nil
		},
		"createYield": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p yieldParams
			if err := decodeParams(raw, &p); err != nil {
				return nil, err
			}
			if err := h.app.Yields.Create(ctx, p.record()); err != nil {
				return nil, err
			}
			return map[string]string{"message": "yield created successfully"}, nil
		},
		"editYield":       editYield,
		"updateUserEntry": editYield,
		"deleteYield": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var p yieldParams
			if err := decodeParams(raw, &p); err != nil {
				return nil, err
			}
			affected, err := h.app.Yields.Delete(ctx, p.key())
			if err != nil {
				return nil, err
			}
			return map[string]int64{"affected_rows": affected}, nil
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return apperrors.Validation("params are required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.Validation("malformed params")
	}
	return nil
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func int64Var(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
