package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/handler"
)

// ---- /clock ----------------------------------------------------------------

func TestGetClock_200(t *testing.T) {
	svc := &mockDispatchServicer{
		now: func(_ context.Context) domain.TimeOfDay { return domain.MustClock("08:06") },
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/clock", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"time":"08:06"}`, rec.Body.String())
}

func TestSetClock_200(t *testing.T) {
	var got domain.TimeOfDay
	svc := &mockDispatchServicer{
		setTime: func(_ context.Context, at domain.TimeOfDay) (domain.TimeOfDay, error) {
			got = at
			return at, nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPut, "/clock", map[string]any{"time": "14:00"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MustClock("14:00"), got)
	var resp handler.ClockResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "14:00", resp.Time)
}

func TestSetClock_409_Regression(t *testing.T) {
	svc := &mockDispatchServicer{
		setTime: func(_ context.Context, _ domain.TimeOfDay) (domain.TimeOfDay, error) {
			return domain.MustClock("06:00"), fmt.Errorf("%w: cannot set the clock to an earlier time", domain.ErrTimeRegression)
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPut, "/clock", map[string]any{"time": "05:00"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cannot set the clock to an earlier time", decodeError(t, rec).Message)
}

func TestSetClock_422_BadTime(t *testing.T) {
	rec := do(t, newHTTPHandler(&mockDispatchServicer{}), http.MethodPut, "/clock", map[string]any{"time": "25:00"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdvanceClock(t *testing.T) {
	svc := &mockDispatchServicer{
		advanceTime: func(_ context.Context, hours, _ int) (domain.TimeOfDay, error) {
			if hours >= 24 {
				return domain.TimeOfDay{}, fmt.Errorf("%w: cannot add 24 hours or more", domain.ErrOverflow)
			}
			return domain.MustClock("08:06"), nil
		},
	}
	h := newHTTPHandler(svc)

	ok := do(t, h, http.MethodPost, "/clock/advance", map[string]any{"hours": 2, "minutes": 6})
	assert.Equal(t, http.StatusOK, ok.Code)

	overflow := do(t, h, http.MethodPost, "/clock/advance", map[string]any{"hours": 24})
	assert.Equal(t, http.StatusUnprocessableEntity, overflow.Code)
	assert.Equal(t, "cannot add 24 hours or more", decodeError(t, overflow).Message)
}

// ---- /board ----------------------------------------------------------------

func TestGetBoard(t *testing.T) {
	svc := &mockDispatchServicer{
		board: func(_ context.Context) string {
			return "The time is 06:00\n" + domain.BoardHeader + "\n" + domain.BoardSeparator
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/board", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "The time is 06:00\n"+domain.BoardHeader+"\n"+domain.BoardSeparator+"\n", rec.Body.String())
}
