package inspector

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
)

type InspectorHandler struct {
	db *gorm.DB
}

func NewInspectorHandler(db *gorm.DB) *InspectorHandler {
	return &InspectorHandler{db: db}
}

func (h *InspectorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/inspectors", h.GetInspectors).Methods("GET")
	router.HandleFunc("/inspectors/{id:[0-9]+}", h.GetInspector).Methods("GET")
	router.HandleFunc("/inspectors/{id:[0-9]+}", h.UpdateInspector).Methods("PUT")
	router.HandleFunc("/inspectors/{id:[0-9]+}/availability", h.SetAvailability).Methods("PATCH")
	router.HandleFunc("/inspectors/specialty/{specialty}", h.GetInspectorsBySpecialty).Methods("GET")
}

func (h *InspectorHandler) GetInspectors(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 20

	query := h.db.Model(&models.Inspector{}).Preload("User")

	if available := r.URL.Query().Get("available"); available != "" {
		isAvailable, parseErr := strconv.ParseBool(available)
		if parseErr != nil {
			http.Error(w, "Invalid value for 'available'", http.StatusBadRequest)
			return
		}
		query = query.Where("available = ?", isAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		http.Error(w, "Error counting inspectors", http.StatusInternalServerError)
		return
	}

	var inspectors []models.Inspector
	if err := query.Order("id ASC").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&inspectors).Error; err != nil {
		http.Error(w, "Error retrieving inspectors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"inspectors":  inspectors,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *InspectorHandler) GetInspector(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inspectorID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid inspector ID", http.StatusBadRequest)
		return
	}

	var ins models.Inspector
	result := h.db.Preload("User").Preload("Reviews").First(&ins, inspectorID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			http.Error(w, "Inspector not found", http.StatusNotFound)
		} else {
			http.Error(w, "Error retrieving inspector", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ins)
}

func (h *InspectorHandler) UpdateInspector(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inspectorID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid inspector ID", http.StatusBadRequest)
		return
	}

	var updateRequest struct {
		Specialties []string `json:"specialties"`
		Bio         string   `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var ins models.Inspector
	if result := h.db.First(&ins, inspectorID); result.Error != nil {
		http.Error(w, "Inspector not found", http.StatusNotFound)
		return
	}

	if updateRequest.Specialties != nil {
		ins.Specialties = pq.StringArray(updateRequest.Specialties)
	}
	ins.Bio = updateRequest.Bio

	if err := h.db.Save(&ins).Error; err != nil {
		http.Error(w, "Error updating inspector", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Inspector updated successfully",
		"inspector": ins,
	})
}

// SetAvailability toggles whether the matcher may assign new bookings to the
// inspector. Existing appointments are unaffected.
func (h *InspectorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inspectorID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid inspector ID", http.StatusBadRequest)
		return
	}

	var availabilityRequest struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&availabilityRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.db.Model(&models.Inspector{}).Where("id = ?", inspectorID).
		Update("available", availabilityRequest.Available)
	if result.Error != nil {
		http.Error(w, "Error updating availability", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Inspector not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Availability updated",
		"available": availabilityRequest.Available,
	})
}

func (h *InspectorHandler) GetInspectorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialty := vars["specialty"]

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 20

	query := h.db.Model(&models.Inspector{}).
		Where("EXISTS (SELECT 1 FROM unnest(specialties) AS s WHERE s ILIKE ?)", "%"+specialty+"%").
		Preload("User")

	var total int64
	query.Count(&total)

	var inspectors []models.Inspector
	if err := query.Order("id ASC").Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&inspectors).Error; err != nil {
		http.Error(w, "Error retrieving inspectors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"inspectors":  inspectors,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
