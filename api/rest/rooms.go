package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/geom"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/game/sim"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/resource"
	"github.com/gnawlrak/Copy-of-Dot-Agents-sub000/server"
)

// RoomHandler exposes room lifecycle and per-tick state over REST.
type RoomHandler struct {
	mgr    *server.Manager
	res    *resource.Loader
	logger *zap.Logger
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(mgr *server.Manager, res *resource.Loader, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{mgr: mgr, res: res, logger: logger}
}

// Register mounts the room routes on a router group.
func (h *RoomHandler) Register(g *gin.RouterGroup) {
	g.GET("/levels", h.Levels)
	g.GET("/rooms", h.List)
	g.POST("/rooms", h.Create)
	g.GET("/rooms/:id", h.State)
	g.POST("/rooms/:id/input", h.Input)
	g.POST("/rooms/:id/pause", h.Pause)
	g.DELETE("/rooms/:id", h.Destroy)
}

// Levels lists the loaded level names.
// GET /api/levels
func (h *RoomHandler) Levels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": h.res.LevelNames()})
}

// RoomInfo is one row in the room listing.
type RoomInfo struct {
	ID      string  `json:"id"`
	Level   string  `json:"level"`
	Tick    uint64  `json:"tick"`
	Time    float64 `json:"time"`
	Enemies int     `json:"enemies"`
}

// List returns all active rooms.
// GET /api/rooms
func (h *RoomHandler) List(c *gin.Context) {
	rooms := h.mgr.List()
	infos := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		snap := r.Snapshot()
		infos = append(infos, RoomInfo{
			ID:      r.ID.String(),
			Level:   r.LevelName,
			Tick:    snap.Tick,
			Time:    snap.Time,
			Enemies: len(snap.Enemies),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": infos})
}

// CreateRoomRequest selects the level and kit for a fresh room.
type CreateRoomRequest struct {
	Level   string           `json:"level"`
	Loadout resource.Loadout `json:"loadout"`
}

// Create starts a new room.
// POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}
	room := h.mgr.Create(req.Level, req.Loadout)
	c.JSON(http.StatusCreated, gin.H{"id": room.ID.String()})
}

// State returns the latest post-tick snapshot.
// GET /api/rooms/:id
func (h *RoomHandler) State(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, room.Snapshot())
}

// InputRequest is one player intent sample.
type InputRequest struct {
	MoveX float64 `json:"move_x"`
	MoveY float64 `json:"move_y"`
	Aim   float64 `json:"aim"`

	Fire   bool `json:"fire"`
	Reload bool `json:"reload"`
	Melee  bool `json:"melee"`
	Heal   bool `json:"heal"`

	SwitchTo *int `json:"switch_to,omitempty"`

	Cook  bool `json:"cook"`
	Throw bool `json:"throw"`

	ToggleDoor bool `json:"toggle_door"`
	HoldDoor   bool `json:"hold_door"`

	Drop bool `json:"drop"`
}

// Input replaces the room's pending intent sample.
// POST /api/rooms/:id/input
func (h *RoomHandler) Input(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}
	in := sim.Input{
		Move:       geom.Vec2{X: req.MoveX, Y: req.MoveY},
		Aim:        req.Aim,
		Fire:       req.Fire,
		Reload:     req.Reload,
		Melee:      req.Melee,
		Heal:       req.Heal,
		SwitchTo:   -1,
		Cook:       req.Cook,
		Throw:      req.Throw,
		ToggleDoor: req.ToggleDoor,
		HoldDoor:   req.HoldDoor,
		Drop:       req.Drop,
	}
	if req.SwitchTo != nil {
		in.SwitchTo = *req.SwitchTo
	}
	room.SetInput(in)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PauseRequest toggles the simulation clock.
type PauseRequest struct {
	Paused bool `json:"paused"`
}

// Pause pauses or resumes a room.
// POST /api/rooms/:id/pause
func (h *RoomHandler) Pause(c *gin.Context) {
	room, ok := h.room(c)
	if !ok {
		return
	}
	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request"})
		return
	}
	room.SetPaused(req.Paused)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Destroy stops and removes a room.
// DELETE /api/rooms/:id
func (h *RoomHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad room id"})
		return
	}
	if !h.mgr.Destroy(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *RoomHandler) room(c *gin.Context) (*server.Room, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad room id"})
		return nil, false
	}
	room := h.mgr.Get(id)
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil, false
	}
	return room, true
}
