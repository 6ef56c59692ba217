package review

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/model"
	reviewsvc "github.com/nilaw2017/rental-server/service/review"
)

type stubSvc struct {
	reviewsvc.Service
	forPropertyFn func(ctx context.Context, propertyID int64) (*model.ReviewSummary, error)
}

func (s *stubSvc) ForProperty(ctx context.Context, propertyID int64) (*model.ReviewSummary, error) {
	return s.forPropertyFn(ctx, propertyID)
}

func reviewServer(svc reviewsvc.Service) *echo.Echo {
	h := &Controller{Svc: svc, V: validator.New(), Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	e := echo.New()
	e.GET("/properties/:id/reviews", h.ListForProperty)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListForProperty_WrapsSummary(t *testing.T) {
	var gotID int64
	e := reviewServer(&stubSvc{
		forPropertyFn: func(ctx context.Context, propertyID int64) (*model.ReviewSummary, error) {
			gotID = propertyID
			return &model.ReviewSummary{
				Reviews:       []model.Review{{ID: 1, Rating: 4}, {ID: 2, Rating: 5}},
				AverageRating: 4.5,
				Count:         2,
			}, nil
		},
	})

	rec := get(e, "/properties/9/reviews")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(9), gotID)

	var body struct {
		Message string              `json:"message"`
		Summary model.ReviewSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Message)
	require.Equal(t, 2, body.Summary.Count)
	require.Equal(t, 4.5, body.Summary.AverageRating)
	require.Len(t, body.Summary.Reviews, 2)
}

func TestListForProperty_Errors(t *testing.T) {
	e := reviewServer(&stubSvc{
		forPropertyFn: func(ctx context.Context, propertyID int64) (*model.ReviewSummary, error) {
			return nil, context.Canceled
		},
	})

	require.Equal(t, http.StatusBadRequest, get(e, "/properties/x/reviews").Code)
	require.Equal(t, http.StatusBadRequest, get(e, "/properties/0/reviews").Code)

	rec := get(e, "/properties/9/reviews")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"internal error"}`, rec.Body.String())
}
