package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/lounge-floor/floor"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

type FloorController struct {
	Reconciler *services.Reconciler
}

func NewFloorController(reconciler *services.Reconciler) *FloorController {
	return &FloorController{Reconciler: reconciler}
}

// GetFloorStatus -> status seluruh meja (derivasi live) + ringkasan
func (fc *FloorController) GetFloorStatus(c *gin.Context) {
	statuses, err := fc.Reconciler.GetTableStatuses()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Floor status", gin.H{
		"statuses": statuses,
		"summary":  services.SummarizeStatuses(statuses),
	})
}

// GetThresholds -> ambang eskalasi yang sedang aktif
func (fc *FloorController) GetThresholds(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Escalation thresholds", services.GetStatusThresholds())
}

// UpdateThresholds -> ganti ambang saat runtime (berlaku process-wide)
func (fc *FloorController) UpdateThresholds(c *gin.Context) {
	var th services.StatusThresholds
	if err := c.ShouldBindJSON(&th); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	services.SetStatusThresholds(th)
	fc.Reconciler.NotifyReservationChange() // recompute dengan ambang baru

	utils.InfoLogger.Printf("Escalation thresholds updated: %+v", services.GetStatusThresholds())
	utils.RespondJSON(c, http.StatusOK, "Escalation thresholds updated", services.GetStatusThresholds())
}

// FloorWSHandler -> endpoint WebSocket dashboard lantai
func (fc *FloorController) FloorWSHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	floor.RegisterClient(ws, c.ClientIP())
	utils.InfoLogger.Printf("Floor dashboard client connected: %s", c.ClientIP())

	// Kirim snapshot awal supaya dashboard tidak mulai kosong
	if statuses, err := fc.Reconciler.GetTableStatuses(); err == nil {
		ws.WriteJSON(floor.Message{
			Event: floor.EventFloorUpdate,
			Data: map[string]interface{}{
				"statuses": statuses,
				"summary":  services.SummarizeStatuses(statuses),
			},
		})
	}

	// Read loop hanya untuk mendeteksi close
	go func() {
		defer floor.UnregisterClient(ws)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
