package identity

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homeguard-labs/homeguard-server/cmd/models"
	"github.com/homeguard-labs/homeguard-server/cmd/utils"
)

type IdentityHandler struct {
	db *gorm.DB
}

func NewIdentityHandler(db *gorm.DB) *IdentityHandler {
	return &IdentityHandler{db: db}
}

func (h *IdentityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/session/bootstrap", utils.AuthMiddleware(h.BootstrapSession)).Methods("POST")
	router.HandleFunc("/employees", utils.AuthMiddleware(h.GetEmployees)).Methods("GET")
	router.HandleFunc("/employees/{id:[0-9]+}", utils.AuthMiddleware(h.GetEmployee)).Methods("GET")
	router.HandleFunc("/employees/{id:[0-9]+}", utils.AuthMiddleware(h.UpdateEmployee)).Methods("PUT")
}

// BootstrapSession reconciles the caller's user and employee records and
// returns the post-sync pair. It runs once per session start, creating the
// employee record on first login.
func (h *IdentityHandler) BootstrapSession(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var employee models.Employee
	err = h.db.Where("email = ?", user.Email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First login: seed the employee record from the identity with an
		// empty work-day list.
		employee = models.Employee{
			Name:       user.FullName,
			Email:      user.Email,
			Department: user.Department,
			WorkDays:   pq.StringArray{},
			Active:     true,
		}
		if err := h.db.Create(&employee).Error; err != nil {
			http.Error(w, "Error creating employee record", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Error loading employee record", http.StatusInternalServerError)
		return
	}

	plan := PlanSync(user, employee)
	if !plan.Empty() {
		log.Printf("Identity sync for %s: reconciling divergent fields", user.Email)
	}

	// Employee-side updates first, then user-side, then re-fetch so the
	// response reflects the post-sync state.
	if plan.EmployeeName != nil {
		if err := h.db.Model(&employee).Update("name", *plan.EmployeeName).Error; err != nil {
			http.Error(w, "Error updating employee record", http.StatusInternalServerError)
			return
		}
	}

	userUpdates := map[string]interface{}{}
	if plan.UserDepartment != nil {
		userUpdates["department"] = *plan.UserDepartment
	}
	if plan.UserLocation != nil {
		userUpdates["assigned_location"] = *plan.UserLocation
	}
	if plan.UserSchedule != nil {
		schedule := datatypes.JSONMap{}
		for day, mode := range plan.UserSchedule {
			schedule[day] = mode
		}
		userUpdates["work_schedule"] = schedule
	}
	if len(userUpdates) > 0 {
		if err := h.db.Model(&user).Updates(userUpdates).Error; err != nil {
			http.Error(w, "Error updating user record", http.StatusInternalServerError)
			return
		}
	}

	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "Error reloading user", http.StatusInternalServerError)
		return
	}
	if err := h.db.Where("email = ?", user.Email).First(&employee).Error; err != nil {
		http.Error(w, "Error reloading employee record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":     user,
		"employee": employee,
		"synced":   !plan.Empty(),
	})
}

func (h *IdentityHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 50

	query := h.db.Model(&models.Employee{})
	if department := r.URL.Query().Get("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if location := r.URL.Query().Get("location"); location != "" {
		query = query.Where("assigned_location = ?", location)
	}

	var total int64
	query.Count(&total)

	var employees []models.Employee
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("name ASC").Find(&employees).Error; err != nil {
		http.Error(w, "Error retrieving employees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"employees":   employees,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *IdentityHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, employeeID).Error; err != nil {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

// UpdateEmployee edits the employee-owned fields. The mirrored user record
// catches up on the next session bootstrap.
func (h *IdentityHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		Department       *string  `json:"department"`
		AssignedLocation *string  `json:"assigned_location"`
		WorkDays         []string `json:"work_days"`
		Active           *bool    `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, employeeID).Error; err != nil {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	if updateData.Department != nil {
		employee.Department = *updateData.Department
	}
	if updateData.AssignedLocation != nil {
		employee.AssignedLocation = *updateData.AssignedLocation
	}
	if updateData.WorkDays != nil {
		employee.WorkDays = pq.StringArray(NormalizeWorkDays(updateData.WorkDays))
	}
	if updateData.Active != nil {
		employee.Active = *updateData.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		http.Error(w, "Error updating employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}
