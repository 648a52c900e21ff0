package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/eventlog"
	"github.com/osse101/brandish-progression/internal/lootbox"
	"github.com/osse101/brandish-progression/internal/player"
	"github.com/osse101/brandish-progression/internal/sse"
)

// SetZoneRequest selects the mining zone
type SetZoneRequest struct {
	ZoneID string `json:"zone_id" validate:"required,max=64,identifier"`
}

// ProgressRequest reports an external mission trigger
type ProgressRequest struct {
	Type   string `json:"type" validate:"required,max=64,identifier"`
	Amount int    `json:"amount" validate:"gte=0,max=100000"`
}

// ProgressResponse lists the missions the trigger completed
type ProgressResponse struct {
	Completed []domain.Mission `json:"completed"`
}

// PlayerHandler serves the per-player progression routes
type PlayerHandler struct {
	service player.Service
	history eventlog.Service
	stream  *sse.Hub
}

// NewPlayerHandler creates a player handler. history may be nil, which leaves
// the event history route unmounted.
func NewPlayerHandler(service player.Service, history eventlog.Service) *PlayerHandler {
	return &PlayerHandler{service: service, history: history}
}

// WithStream mounts the live event stream served from hub. A nil hub leaves it unmounted.
func (h *PlayerHandler) WithStream(hub *sse.Hub) *PlayerHandler {
	h.stream = hub
	return h
}

// Routes mounts every player route below /guilds/{guildID}/players/{playerID}
func (h *PlayerHandler) Routes(r chi.Router) {
	r.Route("/guilds/{guildID}/players/{playerID}", func(r chi.Router) {
		r.Get("/", h.HandleGetProfile)
		r.Post("/mine", h.HandleMine)
		r.Put("/zone", h.HandleSetZone)
		r.Post("/craft/{blueprintID}", h.HandleCraft)

		r.Route("/tools/{toolID}", func(r chi.Router) {
			r.Post("/equip", h.HandleEquipTool)
			r.Post("/repair", h.HandleRepairTool)
			r.Post("/upgrade", h.HandleUpgradeTool)
		})

		r.Route("/jobs/{jobID}", func(r chi.Router) {
			r.Post("/join", h.HandleJoinJob)
			r.Put("/active", h.HandleActivateJob)
			r.Delete("/", h.HandleLeaveJob)
		})
		r.Post("/work", h.HandleWork)
		r.Post("/salary/{period}", h.HandleClaimSalary)

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", h.HandleMissions)
			r.Post("/progress", h.HandleProgress)
			r.Post("/{missionID}/claim", h.HandleClaimMission)
		})

		r.Post("/lootboxes/{boxID}/open", h.HandleOpenLootbox)

		if h.history != nil {
			r.Get("/events", h.HandleHistory)
		}
		if h.stream != nil {
			r.Get("/events/stream", h.HandleStream)
		}
	})
}

// HandleGetProfile returns a stored profile
// @Summary Get player profile
// @Description Returns the stored profile. Never creates one.
// @Tags player
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} player.ProfileView
// @Failure 404 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID} [get]
func (h *PlayerHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProfile(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleMine mines once in the active zone
// @Summary Mine
// @Tags mining
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} player.Outcome[mining.Result]
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} CooldownResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/mine [post]
func (h *PlayerHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	out, err := h.service.Mine(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleSetZone selects the mining zone
// @Summary Set mining zone
// @Tags mining
// @Accept json
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param request body SetZoneRequest true "Zone"
// @Success 200 {object} domain.Zone
// @Failure 422 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/zone [put]
func (h *PlayerHandler) HandleSetZone(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	var req SetZoneRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set zone"); err != nil {
		return
	}
	zone, err := h.service.SetZone(r.Context(), key, req.ZoneID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, zone)
}

// HandleCraft attempts a blueprint
// @Summary Craft
// @Description Costs are paid whether or not the success roll passes
// @Tags crafting
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param blueprintID path string true "Blueprint ID"
// @Success 200 {object} player.Outcome[crafting.Result]
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/craft/{blueprintID} [post]
func (h *PlayerHandler) HandleCraft(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamBlueprintID)
	if !ok {
		return
	}
	out, err := h.service.Craft(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleEquipTool equips an owned tool
// @Summary Equip tool
// @Tags tools
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param toolID path string true "Tool ID"
// @Success 200 {object} domain.Tool
// @Router /v1/guilds/{guildID}/players/{playerID}/tools/{toolID}/equip [post]
func (h *PlayerHandler) HandleEquipTool(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamToolID)
	if !ok {
		return
	}
	tool, err := h.service.EquipTool(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tool)
}

// HandleRepairTool repairs a damaged tool
// @Summary Repair tool
// @Tags tools
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param toolID path string true "Tool ID"
// @Success 200 {object} ledger.RepairResult
// @Router /v1/guilds/{guildID}/players/{playerID}/tools/{toolID}/repair [post]
func (h *PlayerHandler) HandleRepairTool(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamToolID)
	if !ok {
		return
	}
	res, err := h.service.RepairTool(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleUpgradeTool upgrades a tool
// @Summary Upgrade tool
// @Tags tools
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param toolID path string true "Tool ID"
// @Success 200 {object} ledger.UpgradeResult
// @Router /v1/guilds/{guildID}/players/{playerID}/tools/{toolID}/upgrade [post]
func (h *PlayerHandler) HandleUpgradeTool(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamToolID)
	if !ok {
		return
	}
	res, err := h.service.UpgradeTool(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleJoinJob joins a job
// @Summary Join job
// @Tags jobs
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param jobID path string true "Job ID"
// @Success 201 {object} domain.JobRecord
// @Router /v1/guilds/{guildID}/players/{playerID}/jobs/{jobID}/join [post]
func (h *PlayerHandler) HandleJoinJob(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamJobID)
	if !ok {
		return
	}
	rec, err := h.service.JoinJob(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// HandleLeaveJob leaves a job
// @Summary Leave job
// @Tags jobs
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param jobID path string true "Job ID"
// @Success 200 {object} SuccessResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/jobs/{jobID} [delete]
func (h *PlayerHandler) HandleLeaveJob(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamJobID)
	if !ok {
		return
	}
	if err := h.service.LeaveJob(r.Context(), key, id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgJobLeft})
}

// HandleActivateJob switches the active job
// @Summary Activate job
// @Tags jobs
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param jobID path string true "Job ID"
// @Success 200 {object} SuccessResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/jobs/{jobID}/active [put]
func (h *PlayerHandler) HandleActivateJob(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamJobID)
	if !ok {
		return
	}
	if err := h.service.ActivateJob(r.Context(), key, id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgJobActivated})
}

// HandleWork works one shift
// @Summary Work
// @Tags jobs
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} player.Outcome[job.WorkResult]
// @Failure 429 {object} CooldownResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/work [post]
func (h *PlayerHandler) HandleWork(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	out, err := h.service.Work(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleClaimSalary claims the weekly or monthly salary
// @Summary Claim salary
// @Tags jobs
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param period path string true "weekly or monthly"
// @Success 200 {object} job.SalaryResult
// @Failure 429 {object} CooldownResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/salary/{period} [post]
func (h *PlayerHandler) HandleClaimSalary(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	res, err := h.service.ClaimSalary(r.Context(), key, chi.URLParam(r, ParamPeriod))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleMissions returns the mission board, regenerating expired sets
// @Summary Missions
// @Tags missions
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} player.MissionBoard
// @Router /v1/guilds/{guildID}/players/{playerID}/missions [get]
func (h *PlayerHandler) HandleMissions(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	board, err := h.service.Missions(r.Context(), key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// HandleClaimMission claims a completed mission
// @Summary Claim mission
// @Tags missions
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param missionID path string true "Mission ID"
// @Success 200 {object} player.Outcome[mission.ClaimResult]
// @Failure 409 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/missions/{missionID}/claim [post]
func (h *PlayerHandler) HandleClaimMission(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamMissionID)
	if !ok {
		return
	}
	out, err := h.service.ClaimMission(r.Context(), key, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleProgress records an external mission trigger
// @Summary Record mission progress
// @Tags missions
// @Accept json
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param request body ProgressRequest true "Progress"
// @Success 200 {object} ProgressResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/missions/progress [post]
func (h *PlayerHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	var req ProgressRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mission progress"); err != nil {
		return
	}
	completed, err := h.service.RecordProgress(r.Context(), key, req.Type, req.Amount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if completed == nil {
		completed = []domain.Mission{}
	}
	respondJSON(w, http.StatusOK, ProgressResponse{Completed: completed})
}

// HandleOpenLootbox opens one lootbox
// @Summary Open lootbox
// @Tags lootboxes
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param boxID path string true "Box ID"
// @Param source query string false "inventory (default) or adhoc"
// @Success 200 {object} player.Outcome[lootbox.Result]
// @Failure 409 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/lootboxes/{boxID}/open [post]
func (h *PlayerHandler) HandleOpenLootbox(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, ParamBoxID)
	if !ok {
		return
	}
	source := r.URL.Query().Get(QuerySource)
	switch source {
	case "":
		source = lootbox.SourceInventory
	case lootbox.SourceInventory, lootbox.SourceAdhoc:
	default:
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSource)
		return
	}
	out, err := h.service.OpenLootbox(r.Context(), key, id, source)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HistoryResponse lists recorded outcome events
type HistoryResponse struct {
	Events []eventlog.Entry `json:"events"`
}

// HandleHistory returns the player's newest recorded outcome events
// @Summary Event history
// @Tags player
// @Produce json
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/events [get]
func (h *PlayerHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get(QueryLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		limit = n
	}
	events, err := h.history.History(r.Context(), key, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []eventlog.Entry{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Events: events})
}

// HandleStream streams the player's outcome events as server-sent events
// @Summary Live event stream
// @Tags player
// @Produce text/event-stream
// @Param guildID path string true "Guild ID"
// @Param playerID path string true "Player ID"
// @Param types query string false "Comma separated event types"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} ErrorResponse
// @Router /v1/guilds/{guildID}/players/{playerID}/events/stream [get]
func (h *PlayerHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	key, ok := profileKey(w, r)
	if !ok {
		return
	}
	sse.Serve(w, r, h.stream, key)
}
