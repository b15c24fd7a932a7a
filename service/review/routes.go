package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reviews", h.SubmitReview).Methods("POST")
	router.HandleFunc("/reviews/inspector/{inspectorId:[0-9]+}", h.GetInspectorReviews).Methods("GET")
	router.HandleFunc("/reviews/appointment/{appointmentId:[0-9]+}/eligible", h.CheckEligibility).Methods("GET")
}

// SubmitReview records a review for a completed appointment. The review row,
// the appointment's reviewed flag and the inspector's aggregates are written
// in one transaction so a failure leaves nothing half-applied.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var reviewRequest struct {
		AppointmentID  uint   `json:"appointment_id"`
		HomeownerEmail string `json:"homeowner_email"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&reviewRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reviewRequest.AppointmentID == 0 || reviewRequest.HomeownerEmail == "" {
		http.Error(w, "Appointment ID and homeowner email are required", http.StatusBadRequest)
		return
	}
	if !ValidRating(reviewRequest.Rating) {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()

	var appointment models.Appointment
	if err := tx.First(&appointment, reviewRequest.AppointmentID).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	var existing []models.Review
	if err := tx.Where("appointment_id = ?", appointment.ID).Find(&existing).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error checking existing reviews", http.StatusInternalServerError)
		return
	}

	if !CanReview(appointment, existing) {
		tx.Rollback()
		http.Error(w, "Appointment is not eligible for a review", http.StatusConflict)
		return
	}
	if appointment.InspectorID == nil {
		tx.Rollback()
		http.Error(w, "Appointment has no assigned inspector to review", http.StatusConflict)
		return
	}

	review := models.Review{
		AppointmentID:  appointment.ID,
		InspectorID:    *appointment.InspectorID,
		HomeownerEmail: reviewRequest.HomeownerEmail,
		Rating:         reviewRequest.Rating,
		Comment:        reviewRequest.Comment,
	}

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating review", http.StatusInternalServerError)
		return
	}

	if err := tx.Model(&appointment).Update("has_been_reviewed", true).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error marking appointment reviewed", http.StatusInternalServerError)
		return
	}

	if err := h.recomputeAggregates(tx, *appointment.InspectorID); err != nil {
		tx.Rollback()
		http.Error(w, "Error updating inspector rating", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error submitting review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(review)
}

func (h *ReviewHandler) GetInspectorReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inspectorID, err := strconv.ParseUint(vars["inspectorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid inspector ID", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 20

	query := h.db.Model(&models.Review{}).Where("inspector_id = ?", inspectorID)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		http.Error(w, "Error retrieving reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reviews":     reviews,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CheckEligibility lets the front end decide whether to show the review form.
func (h *ReviewHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["appointmentId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	var existing []models.Review
	if err := h.db.Where("appointment_id = ?", appointment.ID).Find(&existing).Error; err != nil {
		http.Error(w, "Error checking existing reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointment_id": appointment.ID,
		"can_review":     CanReview(appointment, existing),
	})
}

// recomputeAggregates refreshes the inspector's denormalized rating columns
// from the reviews table, which stays authoritative.
func (h *ReviewHandler) recomputeAggregates(tx *gorm.DB, inspectorID uint) error {
	var stats struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("inspector_id = ?", inspectorID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Inspector{}).Where("id = ?", inspectorID).
		Updates(map[string]interface{}{
			"average_rating": stats.Average,
			"total_reviews":  stats.Count,
		}).Error
}
