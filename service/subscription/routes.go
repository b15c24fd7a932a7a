package subscription

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/cmd/utils"
	"github.com/homeguard-labs/homeguard-server/service/booking"
)

// Response is a standardized API response structure
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Meta  interface{} `json:"meta,omitempty"`
	Error string      `json:"error,omitempty"`
}

type SubscriptionHandler struct {
	db *gorm.DB
}

func NewSubscriptionHandler(db *gorm.DB) *SubscriptionHandler {
	return &SubscriptionHandler{db: db}
}

func (h *SubscriptionHandler) RegisterRoutes(router *mux.Router) {
	subscriptionRouter := router.PathPrefix("/subscriptions").Subrouter()

	subscriptionRouter.HandleFunc("", utils.AuthMiddleware(h.GetSubscriptions)).Methods("GET")
	subscriptionRouter.HandleFunc("/offer-pool", h.GetOfferPool).Methods("GET")
	subscriptionRouter.HandleFunc("/{id:[0-9]+}", utils.AuthMiddleware(h.GetSubscription)).Methods("GET")
	subscriptionRouter.HandleFunc("/user/{userID:[0-9]+}", utils.AuthMiddleware(h.GetUserSubscriptions)).Methods("GET")
	subscriptionRouter.HandleFunc("/user/{userID:[0-9]+}/active", utils.AuthMiddleware(h.GetActiveSubscription)).Methods("GET")
}

// GetOfferPool reports how many first-booking offer redemptions remain. The
// pricing itself takes eligibility as an input; this endpoint only exposes
// the pool for the front end.
func (h *SubscriptionHandler) GetOfferPool(w http.ResponseWriter, r *http.Request) {
	var claimed int64
	if err := h.db.Model(&models.Subscription{}).Count(&claimed).Error; err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "Failed to count claimed offers")
		return
	}

	remaining := int64(booking.OfferPoolCap) - claimed
	if remaining < 0 {
		remaining = 0
	}

	h.respondWithJSON(w, http.StatusOK, Response{Data: map[string]interface{}{
		"cap":       booking.OfferPoolCap,
		"claimed":   claimed,
		"remaining": remaining,
	}})
}

func (h *SubscriptionHandler) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	query := h.db.Model(&models.Subscription{}).Preload("User")

	if status := queryParams.Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if subType := queryParams.Get("type"); subType != "" {
		query = query.Where("type = ?", subType)
	}
	if userIDStr := queryParams.Get("user_id"); userIDStr != "" {
		if userID, err := strconv.ParseUint(userIDStr, 10, 32); err == nil {
			query = query.Where("user_id = ?", userID)
		}
	}

	page := 1
	if pageStr := queryParams.Get("page"); pageStr != "" {
		if pageVal, err := strconv.Atoi(pageStr); err == nil && pageVal > 0 {
			page = pageVal
		}
	}
	pageSize := 10
	if pageSizeStr := queryParams.Get("page_size"); pageSizeStr != "" {
		if pageSizeVal, err := strconv.Atoi(pageSizeStr); err == nil && pageSizeVal > 0 && pageSizeVal <= 100 {
			pageSize = pageSizeVal
		}
	}
	offset := (page - 1) * pageSize

	var total int64
	query.Count(&total)

	var subscriptions []models.Subscription
	if result := query.Limit(pageSize).Offset(offset).Find(&subscriptions); result.Error != nil {
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	meta := map[string]interface{}{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"pages":     (total + int64(pageSize) - 1) / int64(pageSize),
	}

	h.respondWithJSON(w, http.StatusOK, Response{Data: subscriptions, Meta: meta})
}

func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	var subscription models.Subscription
	if err := h.db.Preload("User").First(&subscription, id).Error; err != nil {
		h.respondWithError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	h.respondWithJSON(w, http.StatusOK, Response{Data: subscription})
}

func (h *SubscriptionHandler) GetUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["userID"], 10, 32)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		h.respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var subscriptions []models.Subscription
	if err := h.db.Where("user_id = ?", userID).Find(&subscriptions).Error; err != nil {
		h.respondWithError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	h.respondWithJSON(w, http.StatusOK, Response{Data: subscriptions})
}

// GetActiveSubscription returns the user's unconsumed consultation credit, if
// any.
func (h *SubscriptionHandler) GetActiveSubscription(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["userID"], 10, 32)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var subscription models.Subscription
	err = h.db.Where("user_id = ? AND status = ?", userID, "active").
		Order("claimed_at DESC").
		Preload("User").
		First(&subscription).Error
	if err != nil {
		h.respondWithError(w, http.StatusNotFound, "No active subscription found for this user")
		return
	}

	h.respondWithJSON(w, http.StatusOK, Response{Data: subscription})
}

func (h *SubscriptionHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, Response{Error: message})
}

func (h *SubscriptionHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
