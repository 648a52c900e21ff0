package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/brandish-progression/internal/cooldown"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/event"
	"github.com/osse101/brandish-progression/internal/eventlog"
	"github.com/osse101/brandish-progression/internal/job"
	"github.com/osse101/brandish-progression/internal/lootbox"
	"github.com/osse101/brandish-progression/internal/mining"
	"github.com/osse101/brandish-progression/internal/player"
	"github.com/osse101/brandish-progression/internal/sse"
)

var key = domain.ProfileKey{GuildID: "g1", PlayerID: "p1"}

const base = "/guilds/g1/players/p1"

func newRouter(svc *MockPlayerService) http.Handler {
	r := chi.NewRouter()
	NewPlayerHandler(svc, nil).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleMine(t *testing.T) {
	svc := new(MockPlayerService)
	out := &player.Outcome[*mining.Result]{
		Result: &mining.Result{ZoneID: "forest_mine", MaterialID: "stone", Quantity: 2},
		Level:  1,
		Coins:  100,
	}
	svc.On("Mine", mock.Anything, key).Return(out, nil)

	rec := do(t, newRouter(svc), http.MethodPost, base+"/mine", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "stone", got["result"].(map[string]any)["material_id"])
	assert.Equal(t, float64(100), got["coins"])
	svc.AssertExpectations(t)
}

func TestHandleGetProfile(t *testing.T) {
	svc := new(MockPlayerService)
	view := &player.ProfileView{
		PlayerProfile: domain.NewPlayerProfile("p1", "g1", time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)),
		XPToNext:      100,
		CarriedWeight: 12,
		FreeCapacity:  488,
	}
	svc.On("GetProfile", mock.Anything, key).Return(view, nil)

	rec := do(t, newRouter(svc), http.MethodGet, base, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "p1", got["player_id"], "profile fields sit at the top level")
	assert.Equal(t, float64(100), got["xp_to_next"])
	assert.Equal(t, float64(12), got["carried_weight"])
	assert.Equal(t, float64(488), got["free_capacity"])
	svc.AssertExpectations(t)
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"validation", fmt.Errorf("%w: need 10", domain.ErrInsufficientFunds), http.StatusUnprocessableEntity, "validation"},
		{"not found", domain.ErrProfileNotFound, http.StatusNotFound, "not_found"},
		{"capacity", domain.ErrCapacityExceeded, http.StatusConflict, "capacity"},
		{"conflict", domain.ErrMissionClaimed, http.StatusConflict, "conflict"},
		{"fatal", domain.ErrCatalogCorrupt, http.StatusInternalServerError, "fatal"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPlayerService)
			svc.On("GetProfile", mock.Anything, key).Return(nil, tt.err)

			rec := do(t, newRouter(svc), http.MethodGet, base, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, ErrMsgGenericServerError, got.Error, "internal details are hidden")
			}
		})
	}
}

func TestCooldownResponse(t *testing.T) {
	svc := new(MockPlayerService)
	svc.On("Work", mock.Anything, key).Return(nil, cooldown.ErrOnCooldown{Action: "work", Remaining: 90*time.Second + 200*time.Millisecond})

	rec := do(t, newRouter(svc), http.MethodPost, base+"/work", "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "91", rec.Header().Get(HeaderRetryAfter))
	var got CooldownResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(91), got.RemainingSeconds)
	assert.Equal(t, "work", got.Action)
	assert.Equal(t, "cooldown", got.Kind)
	assert.Equal(t, "You can work again in 1m 30s", got.Error)
}

func TestCooldownMessage(t *testing.T) {
	tests := []struct {
		action    string
		remaining time.Duration
		expected  string
	}{
		{cooldown.ActionMine, 42 * time.Second, "You can mine again in 42s"},
		{cooldown.ActionJobChange, 3*time.Minute + 5*time.Second, "You can change job again in 3m 5s"},
		{cooldown.ActionWeeklySalary, 26*time.Hour + 30*time.Minute, "You can claim your weekly salary again in 26h 30m"},
		{"dig", 5 * time.Second, "You can dig again in 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, cooldownMessage(tt.action, tt.remaining))
		})
	}
}

func TestHandleSetZone(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := new(MockPlayerService)
		svc.On("SetZone", mock.Anything, key, "deep_caverns").Return(&domain.Zone{ID: "deep_caverns"}, nil)

		rec := do(t, newRouter(svc), http.MethodPut, base+"/zone", `{"zone_id":"deep_caverns"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing zone", func(t *testing.T) {
		svc := new(MockPlayerService)

		rec := do(t, newRouter(svc), http.MethodPut, base+"/zone", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var got ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Contains(t, got.Fields, "zoneid")
		svc.AssertNotCalled(t, "SetZone")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, newRouter(new(MockPlayerService)), http.MethodPut, base+"/zone", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPathValidation(t *testing.T) {
	svc := new(MockPlayerService)

	rec := do(t, newRouter(svc), http.MethodPost, "/guilds/g1/players/p%20x/mine", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Mine")
}

func TestHandleOpenLootbox(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantSource string
		wantStatus int
	}{
		{"default source", "", lootbox.SourceInventory, http.StatusOK},
		{"adhoc", "?source=adhoc", lootbox.SourceAdhoc, http.StatusOK},
		{"unknown source", "?source=shop", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPlayerService)
			if tt.wantSource != "" {
				svc.On("OpenLootbox", mock.Anything, key, "basic_box", tt.wantSource).
					Return(&player.Outcome[*lootbox.Result]{Result: &lootbox.Result{BoxID: "basic_box", Source: tt.wantSource}}, nil)
			}

			rec := do(t, newRouter(svc), http.MethodPost, base+"/lootboxes/basic_box/open"+tt.query, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestJobRoutes(t *testing.T) {
	svc := new(MockPlayerService)
	svc.On("JoinJob", mock.Anything, key, "miner").Return(&domain.JobRecord{JobID: "miner", Level: 1}, nil)
	svc.On("LeaveJob", mock.Anything, key, "miner").Return(nil)
	svc.On("ActivateJob", mock.Anything, key, "miner").Return(domain.ErrNotInJob)
	svc.On("ClaimSalary", mock.Anything, key, "monthly").Return(&job.SalaryResult{JobID: "miner", Period: "monthly"}, nil)
	h := newRouter(svc)

	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, base+"/jobs/miner/join", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, base+"/jobs/miner", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPut, base+"/jobs/miner/active", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, base+"/salary/monthly", "").Code)
	svc.AssertExpectations(t)
}

func TestHandleProgress(t *testing.T) {
	svc := new(MockPlayerService)
	svc.On("RecordProgress", mock.Anything, key, "messages", 3).Return(nil, nil)
	h := newRouter(svc)

	rec := do(t, h, http.MethodPost, base+"/missions/progress", `{"type":"messages","amount":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completed":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, base+"/missions/progress", `{"type":"messages","amount":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "RecordProgress", 1)
}

func TestHandleHistory(t *testing.T) {
	ctx := context.Background()
	history := eventlog.NewService(eventlog.NewMemoryRepository(0))
	bus := event.NewMemoryBus()
	require.NoError(t, history.Subscribe(bus))
	for range 3 {
		require.NoError(t, bus.Publish(ctx, event.New(event.JobJoined, event.JobPayloadV1{
			Actor: event.Actor{GuildID: key.GuildID, PlayerID: key.PlayerID}, JobID: "miner",
		}, time.Now())))
	}

	r := chi.NewRouter()
	NewPlayerHandler(new(MockPlayerService), history).Routes(r)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{"default limit", "", http.StatusOK, 3},
		{"limited", "?limit=2", http.StatusOK, 2},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
		{"over maximum", "?limit=100000", http.StatusUnprocessableEntity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, base+"/events"+tt.query, "")

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got HistoryResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Len(t, got.Events, tt.wantCount)
		})
	}

	t.Run("unmounted without history", func(t *testing.T) {
		rec := do(t, newRouter(new(MockPlayerService)), http.MethodGet, base+"/events", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleStream(t *testing.T) {
	t.Run("unmounted without a hub", func(t *testing.T) {
		rec := do(t, newRouter(new(MockPlayerService)), http.MethodGet, base+"/events/stream", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	hub := sse.NewHub()
	hub.Start()
	r := chi.NewRouter()
	NewPlayerHandler(new(MockPlayerService), nil).WithStream(hub).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Stop)

	t.Run("invalid player id", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/guilds/g1/players/bad%20id/events/stream", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("streams the player's events", func(t *testing.T) {
		resp, err := http.Get(srv.URL + base + "/events/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		sc := bufio.NewScanner(resp.Body)
		require.True(t, sc.Scan())
		require.True(t, sc.Scan())
		assert.Equal(t, "event: "+sse.EventTypeConnected, sc.Text())

		require.True(t, hub.Broadcast(key, string(event.MaterialMined), map[string]int{"quantity": 1}))
		for sc.Scan() {
			if sc.Text() == "event: "+string(event.MaterialMined) {
				return
			}
		}
		t.Fatal("mined event not streamed")
	})
}
