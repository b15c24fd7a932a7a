package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/cmd/utils"
	"github.com/homeguard-labs/homeguard-server/service/appointment"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type DashboardStats struct {
	TotalHomeowners  int64            `json:"total_homeowners"`
	TotalInspectors  int64            `json:"total_inspectors"`
	TotalEmployees   int64            `json:"total_employees"`
	Appointments     map[string]int64 `json:"appointments"`
	QuotedRevenue    float64          `json:"quoted_revenue"`
	OffersClaimed    int64            `json:"offers_claimed"`
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.HandleFunc("/stats", utils.AuthMiddleware(h.GetDashboardStats)).Methods("GET")
}

func (h *DashboardHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats := DashboardStats{Appointments: make(map[string]int64)}

	h.db.Model(&models.User{}).Where("role = ?", "homeowner").Count(&stats.TotalHomeowners)
	h.db.Model(&models.Inspector{}).Count(&stats.TotalInspectors)
	h.db.Model(&models.Employee{}).Count(&stats.TotalEmployees)
	h.db.Model(&models.Subscription{}).Count(&stats.OffersClaimed)

	for _, status := range []string{
		appointment.StatusScheduled,
		appointment.StatusInProgress,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
	} {
		var count int64
		h.db.Model(&models.Appointment{}).Where("status = ?", status).Count(&count)
		stats.Appointments[status] = count
	}

	// Revenue here is the sum of quoted prices; payment capture is not part
	// of this system.
	var revenue struct{ Total float64 }
	h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(price_paid), 0) AS total").
		Where("status = ?", appointment.StatusCompleted).
		Scan(&revenue)
	stats.QuotedRevenue = revenue.Total

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
