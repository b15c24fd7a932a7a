package appointment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/service/booking"
	"github.com/homeguard-labs/homeguard-server/service/inspector"
)

type AppointmentHandler struct {
	db         *gorm.DB
	expoClient *expo.PushClient
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		expoClient: expo.NewPushClient(nil),
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments/book", h.BookAppointment).Methods("POST")
	router.HandleFunc("/appointments/slots", h.GetSlots).Methods("GET")
	router.HandleFunc("/appointments", h.GetAllAppointments).Methods("GET")
	router.HandleFunc("/appointments/{id:[0-9]+}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/appointments/{id:[0-9]+}/start", h.StartAppointment).Methods("PATCH")
	router.HandleFunc("/appointments/{id:[0-9]+}/complete", h.CompleteAppointment).Methods("PATCH")
	router.HandleFunc("/appointments/{id:[0-9]+}/cancel", h.CancelAppointment).Methods("PATCH")
	router.HandleFunc("/appointments/homeowner/{email}", h.GetHomeownerAppointments).Methods("GET")
	router.HandleFunc("/appointments/inspector/{inspectorId:[0-9]+}", h.GetInspectorAppointments).Methods("GET")
}

// GetSlots returns the bookable time slots for a date. Existing bookings are
// not consulted, so two homeowners can pick the same slot.
func (h *AppointmentHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":  dateStr,
		"slots": booking.Slots(date),
	})
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var bookingRequest struct {
		HomeownerName  string `json:"homeowner_name"`
		HomeownerEmail string `json:"homeowner_email"`
		IssueCategory  string `json:"issue_category"`
		Description    string `json:"description"`
		Priority       string `json:"priority"`
		Date           string `json:"date"`
		TimeSlot       string `json:"time_slot"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if bookingRequest.HomeownerName == "" || bookingRequest.HomeownerEmail == "" ||
		bookingRequest.IssueCategory == "" || bookingRequest.Description == "" ||
		bookingRequest.Date == "" || bookingRequest.TimeSlot == "" {
		http.Error(w, "Missing required booking fields", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", bookingRequest.Date)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !booking.ValidSlot(date, bookingRequest.TimeSlot) {
		http.Error(w, "Time slot is not offered on that date", http.StatusBadRequest)
		return
	}

	priority := bookingRequest.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		http.Error(w, "Invalid priority", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()

	// Offer eligibility: the global pool must have redemptions left and this
	// homeowner must not have claimed one before. Guests without an account
	// book at the regular rate.
	var homeowner models.User
	hasAccount := tx.Where("email = ?", bookingRequest.HomeownerEmail).First(&homeowner).Error == nil

	offerEligible := false
	if hasAccount {
		var claimed int64
		tx.Model(&models.Subscription{}).Count(&claimed)

		var used int64
		tx.Model(&models.Subscription{}).Where("user_id = ?", homeowner.ID).Count(&used)

		offerEligible = booking.OfferEligible(claimed, used > 0)
	}

	price := booking.Price(date, offerEligible)

	// Best-effort assignment: a booking without an available inspector is
	// still created.
	var directory []models.Inspector
	if err := tx.Order("id ASC").Find(&directory).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error loading inspector directory", http.StatusInternalServerError)
		return
	}

	category := inspector.ParseCategory(bookingRequest.IssueCategory)
	matched := inspector.Match(category, directory)

	var inspectorID *uint
	if matched != nil {
		inspectorID = &matched.ID
	} else {
		log.Printf("No available inspector for category %s; booking proceeds unassigned", category)
	}

	appointment := models.Appointment{
		HomeownerName:  bookingRequest.HomeownerName,
		HomeownerEmail: bookingRequest.HomeownerEmail,
		InspectorID:    inspectorID,
		IssueCategory:  string(category),
		Description:    bookingRequest.Description,
		Priority:       priority,
		ScheduledDate:  date,
		TimeSlot:       bookingRequest.TimeSlot,
		Status:         StatusScheduled,
		PricePaid:      price,
		MeetingLink:    "https://meet.homeguard.app/" + uuid.NewString(),
	}

	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating appointment", http.StatusInternalServerError)
		return
	}

	// Claiming the offer is what burns a pool slot, so it rides in the same
	// transaction as the booking it priced.
	if offerEligible {
		subscription := models.Subscription{
			UserID:    homeowner.ID,
			Type:      "standard_consultation",
			Status:    "active",
			ClaimedAt: time.Now(),
		}
		if err := tx.Create(&subscription).Error; err != nil {
			tx.Rollback()
			http.Error(w, "Error claiming first-booking offer", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error completing booking", http.StatusInternalServerError)
		return
	}

	h.db.Preload("Inspector").Preload("Inspector.User").First(&appointment, appointment.ID)

	go h.notifyBooking(appointment)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointment": appointment,
		"assigned_to": assignmentLabel(appointment),
	})
}

// StartAppointment moves a scheduled appointment into the inspection session.
func (h *AppointmentHandler) StartAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}

	if err := beginSession(&appointment); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.db.Save(&appointment).Error; err != nil {
		http.Error(w, "Error starting appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

// CompleteAppointment files the inspection report and closes the session.
// Filing the report also consumes the homeowner's single-use consultation
// credit, in the same transaction as the status change.
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}

	var report struct {
		Summary          string `json:"report_summary"`
		IssuesIdentified string `json:"issues_identified"`
		Recommendations  string `json:"recommendations"`
		FollowUpActions  string `json:"follow_up_actions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if report.Summary == "" || report.IssuesIdentified == "" ||
		report.Recommendations == "" || report.FollowUpActions == "" {
		http.Error(w, "All report fields are required to complete an appointment", http.StatusBadRequest)
		return
	}

	if err := fileReport(&appointment, report.Summary, report.IssuesIdentified,
		report.Recommendations, report.FollowUpActions); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	tx := h.db.Begin()

	if err := tx.Save(&appointment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error completing appointment", http.StatusInternalServerError)
		return
	}

	var homeowner models.User
	if err := tx.Where("email = ?", appointment.HomeownerEmail).First(&homeowner).Error; err == nil {
		result := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND type = ? AND status = ?", homeowner.ID, "standard_consultation", "active").
			Updates(map[string]interface{}{"type": "", "status": "used"})
		if result.Error != nil {
			tx.Rollback()
			http.Error(w, "Error consuming consultation credit", http.StatusInternalServerError)
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		http.Error(w, "Error looking up homeowner", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error completing appointment", http.StatusInternalServerError)
		return
	}

	go h.notifyCompletion(appointment)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

// CancelAppointment is only legal before the session starts. No refund is
// issued; payment capture is out of scope.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}

	if err := cancelSession(&appointment); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.db.Save(&appointment).Error; err != nil {
		http.Error(w, "Error cancelling appointment", http.StatusInternalServerError)
		return
	}

	go h.sendAppointmentEmail(
		appointment.HomeownerEmail,
		"Appointment cancelled",
		fmt.Sprintf("Your consultation on %s at %s has been cancelled.",
			appointment.ScheduledDate.Format("2006-01-02"), appointment.TimeSlot),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment cancelled successfully",
	})
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	query := h.db.Model(&models.Appointment{}).Preload("Inspector").Preload("Inspector.User")

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := r.URL.Query().Get("date"); date != "" {
		query = query.Where("scheduled_date = ?", date)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("issue_category = ?", category)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("scheduled_date DESC, time_slot DESC").Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.loadAppointment(w, r)
	if !ok {
		return
	}

	h.db.Preload("Inspector").Preload("Inspector.User").First(&appointment, appointment.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointment": appointment,
		"assigned_to": assignmentLabel(appointment),
	})
}

func (h *AppointmentHandler) GetHomeownerAppointments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := vars["email"]

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	query := h.db.Model(&models.Appointment{}).Where("homeowner_email = ?", email).
		Preload("Inspector").Preload("Inspector.User")

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("scheduled_date DESC, time_slot DESC").Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *AppointmentHandler) GetInspectorAppointments(w http.ResponseWriter, r *http.Request) {
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
	pageSize := 100

	query := h.db.Model(&models.Appointment{}).Where("inspector_id = ?", inspectorID)

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("scheduled_date DESC, time_slot DESC").Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *AppointmentHandler) loadAppointment(w http.ResponseWriter, r *http.Request) (models.Appointment, bool) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return models.Appointment{}, false
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return models.Appointment{}, false
	}
	return appointment, true
}

func assignmentLabel(appointment models.Appointment) string {
	if appointment.InspectorID == nil {
		return inspector.UnassignedLabel
	}
	if appointment.Inspector != nil && appointment.Inspector.User != nil {
		return appointment.Inspector.User.FullName
	}
	return fmt.Sprintf("Inspector #%d", *appointment.InspectorID)
}

// notifyBooking fans out the confirmation email and a push to the homeowner's
// registered devices. Failures are logged and never affect the booking.
func (h *AppointmentHandler) notifyBooking(appointment models.Appointment) {
	body := fmt.Sprintf(
		"Your %s consultation is booked for %s at %s.\nMeeting link: %s\nPrice: %.2f",
		appointment.IssueCategory,
		appointment.ScheduledDate.Format("2006-01-02"),
		appointment.TimeSlot,
		appointment.MeetingLink,
		appointment.PricePaid,
	)
	h.sendAppointmentEmail(appointment.HomeownerEmail, "Consultation booked", body)
	h.pushToHomeowner(appointment, "Consultation booked",
		fmt.Sprintf("%s at %s", appointment.ScheduledDate.Format("2006-01-02"), appointment.TimeSlot))
}

func (h *AppointmentHandler) notifyCompletion(appointment models.Appointment) {
	body := fmt.Sprintf(
		"Your inspection report is ready.\n\nSummary: %s\nIssues identified: %s\nRecommendations: %s\nFollow-up actions: %s",
		appointment.ReportSummary,
		appointment.IssuesIdentified,
		appointment.Recommendations,
		appointment.FollowUpActions,
	)
	h.sendAppointmentEmail(appointment.HomeownerEmail, "Inspection report ready", body)
	h.pushToHomeowner(appointment, "Inspection complete", "Your report is ready to view.")
}

func (h *AppointmentHandler) sendAppointmentEmail(to, subject, body string) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		log.Printf("Invalid SMTP port %q, skipping email to %s", smtpPort, to)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Error sending %q email to %s: %v", subject, to, err)
	}
}

func (h *AppointmentHandler) pushToHomeowner(appointment models.Appointment, title, body string) {
	var homeowner models.User
	if err := h.db.Where("email = ?", appointment.HomeownerEmail).First(&homeowner).Error; err != nil {
		return
	}

	var devices []models.Device
	if err := h.db.Where("user_id = ?", fmt.Sprint(homeowner.ID)).Find(&devices).Error; err != nil || len(devices) == 0 {
		return
	}

	var tokens []expo.ExponentPushToken
	for _, device := range devices {
		token, err := expo.NewExponentPushToken(device.Token)
		if err != nil {
			log.Printf("Invalid push token %s: %v", device.Token, err)
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return
	}

	response, err := h.expoClient.Publish(&expo.PushMessage{
		To:       tokens,
		Title:    title,
		Body:     body,
		Sound:    "default",
		Priority: expo.DefaultPriority,
		Data:     map[string]string{"appointment_id": fmt.Sprint(appointment.ID)},
	})
	if err != nil {
		log.Printf("Error publishing push for appointment %d: %v", appointment.ID, err)
		return
	}
	if err := response.ValidateResponse(); err != nil {
		log.Printf("Push validation error for appointment %d: %v", appointment.ID, err)
	}

	history := models.NotificationHistory{
		UserID: fmt.Sprint(homeowner.ID),
		Title:  title,
		Body:   body,
		Status: "sent",
		SentAt: time.Now(),
	}
	if err := h.db.Create(&history).Error; err != nil {
		log.Printf("Error recording notification history: %v", err)
	}
}
