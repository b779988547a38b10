package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/config"
	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/service"
	"github.com/amterp/dairy/internal/util"
)

// Handler serves the record API. Calls into the services are serialized
// with one mutex, so at most one store operation runs at a time.
type Handler struct {
	services *service.Services
	settings *config.Settings
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

// NewHandler creates a new API handler.
func NewHandler(services *service.Services, settings *config.Settings, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Handler{
		services: services,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// locked runs fn while holding the service mutex.
func (h *Handler) locked(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn()
}

// RegisterRoutes registers all API routes on the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.health)

	v1 := r.Group("/api/v1")
	v1.POST("/signup", h.signup)
	v1.POST("/login", h.login)

	authed := v1.Group("", h.requireAuth())

	// Animals
	authed.POST("/animals", h.addAnimal)
	authed.GET("/animals", h.listAnimals)
	authed.GET("/animals/:id", h.findAnimal)
	authed.DELETE("/animals/:id", h.deleteAnimal)

	// Staff
	authed.POST("/staff", h.addStaff)
	authed.GET("/staff", h.listStaff)
	authed.GET("/staff/search", h.searchStaff)
	authed.DELETE("/staff/:name", h.removeStaff)
	authed.POST("/staff/profile", h.addProfile)
	authed.GET("/staff/profile/:username", h.getProfile)

	// Milk
	authed.POST("/milk", h.addMilk)
	authed.POST("/milk/aggregate", h.aggregateMilk)
	authed.GET("/milk/animals/:id", h.milkByAnimal)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ============================================================================
// Auth
// ============================================================================

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse describes an authenticated user.
type LoginResponse struct {
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Actions  []string `json:"actions"`
	Message  string   `json:"message"`
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	err := h.locked(func() error {
		return h.services.Auth.SignUp(req.Username, req.Password)
	})
	if err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Sign up successfully! Please login now."})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Role == "" {
		req.Role = string(service.RoleStaff)
	}
	role, err := service.ParseRole(req.Role)
	if err != nil {
		Error(c, err)
		return
	}

	var session *service.Session
	err = h.locked(func() (err error) {
		session, err = h.services.Auth.Login(role, req.Username, req.Password)
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}

	actions := session.Role.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	c.JSON(http.StatusOK, LoginResponse{
		Username: session.Username,
		Role:     string(session.Role),
		Actions:  names,
		Message:  "Login successful!",
	})
}

// ============================================================================
// Lookups
// ============================================================================

// writeLookup answers a list with 200 either way, and a single-record
// lookup with 404 when nothing matched.
func writeLookup(c *gin.Context, lookup service.Lookup, single bool) {
	status := http.StatusOK
	if single && !lookup.Found {
		status = http.StatusNotFound
	}
	c.JSON(status, lookup)
}

func writeRemoval(c *gin.Context, removal service.Removal) {
	status := http.StatusOK
	if removal.Removed == 0 {
		status = http.StatusNotFound
	}
	c.JSON(status, removal)
}

// ============================================================================
// Animals
// ============================================================================

func (h *Handler) addAnimal(c *gin.Context) {
	if !authorize(c, service.ActionAddAnimal) {
		return
	}
	var animal model.Animal
	if err := c.ShouldBindJSON(&animal); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if animal.ID == "" {
		Error(c, dairyerr.RequiredField("id"))
		return
	}

	if err := h.locked(func() error { return h.services.Animals.Add(animal) }); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Animal record added."})
}

func (h *Handler) listAnimals(c *gin.Context) {
	if !authorize(c, service.ActionListAnimals) {
		return
	}
	typ := c.Query("type")

	var lookup service.Lookup
	err := h.locked(func() (err error) {
		if typ == "" {
			lookup, err = h.services.Animals.ListAll()
		} else {
			lookup, err = h.services.Animals.ListByType(typ)
		}
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeLookup(c, lookup, false)
}

func (h *Handler) findAnimal(c *gin.Context) {
	if !authorize(c, service.ActionFindAnimal) {
		return
	}

	var lookup service.Lookup
	err := h.locked(func() (err error) {
		lookup, err = h.services.Animals.Find(c.Param("id"))
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeLookup(c, lookup, true)
}

func (h *Handler) deleteAnimal(c *gin.Context) {
	if !authorize(c, service.ActionDeleteAnimal) {
		return
	}

	var removal service.Removal
	err := h.locked(func() (err error) {
		removal, err = h.services.Animals.Delete(c.Param("id"))
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeRemoval(c, removal)
}

// ============================================================================
// Staff
// ============================================================================

func (h *Handler) addStaff(c *gin.Context) {
	if !authorize(c, service.ActionAddStaff) {
		return
	}
	var staff model.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if staff.Name == "" {
		Error(c, dairyerr.RequiredField("name"))
		return
	}

	if err := h.locked(func() error { return h.services.Staff.Add(staff) }); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff record added successfully."})
}

func (h *Handler) listStaff(c *gin.Context) {
	if !authorize(c, service.ActionListStaff) {
		return
	}
	typ := c.Query("type")

	var lookup service.Lookup
	err := h.locked(func() (err error) {
		if typ == "" {
			lookup, err = h.services.Staff.ListAll()
		} else {
			lookup, err = h.services.Staff.ListByType(typ)
		}
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeLookup(c, lookup, false)
}

func (h *Handler) searchStaff(c *gin.Context) {
	if !authorize(c, service.ActionFindStaff) {
		return
	}

	var lookup service.Lookup
	err := h.locked(func() (err error) {
		lookup, err = h.services.Staff.FindByKeyword(c.Query("q"))
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeLookup(c, lookup, true)
}

func (h *Handler) removeStaff(c *gin.Context) {
	if !authorize(c, service.ActionRemoveStaff) {
		return
	}

	var removal service.Removal
	err := h.locked(func() (err error) {
		removal, err = h.services.Staff.Remove(c.Param("name"))
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeRemoval(c, removal)
}

type profileRequest struct {
	WorkStatus   string `json:"work_status"`
	WorkingHours string `json:"working_hours"`
	Salary       string `json:"salary"`
	Type         string `json:"type"`
}

func (h *Handler) addProfile(c *gin.Context) {
	if !authorize(c, service.ActionManageProfile) {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	input := service.ProfileInput{
		Username:     sessionFrom(c).Username,
		WorkStatus:   req.WorkStatus,
		WorkingHours: req.WorkingHours,
		Salary:       req.Salary,
		Type:         req.Type,
	}
	if err := h.locked(func() error { return h.services.Staff.AddProfile(input) }); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Your profile has been added."})
}

func (h *Handler) getProfile(c *gin.Context) {
	if !authorize(c, service.ActionManageProfile) {
		return
	}
	session := sessionFrom(c)
	username := c.Param("username")
	if username != session.Username {
		Error(c, &dairyerr.ForbiddenError{Role: string(session.Role), Action: "view another user's profile"})
		return
	}

	var lookup service.Lookup
	err := h.locked(func() (err error) {
		lookup, err = h.services.Staff.Profile(username)
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	writeLookup(c, lookup, true)
}

// ============================================================================
// Milk
// ============================================================================

func (h *Handler) addMilk(c *gin.Context) {
	if !authorize(c, service.ActionAddMilk) {
		return
	}
	var entry model.MilkEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if entry.AnimalID == "" {
		Error(c, dairyerr.RequiredField("animal_id"))
		return
	}
	if entry.Date == "" {
		entry.Date = h.now().Format(h.settings.DateLayout)
	}
	if entry.StaffName == "" {
		entry.StaffName = sessionFrom(c).Username
	}
	if entry.PricePerLiter == "" && h.settings.PricePerLiter > 0 {
		entry.PricePerLiter = util.FormatNumber(h.settings.PricePerLiter)
	}

	if err := h.locked(func() error { return h.services.Milk.Add(entry) }); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Milk record added.", "entry": entry})
}

type aggregateRequest struct {
	Date          string   `json:"date"`
	PricePerLiter *float64 `json:"price_per_liter"`
}

func (h *Handler) aggregateMilk(c *gin.Context) {
	if !authorize(c, service.ActionAggregateMilk) {
		return
	}
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	price := h.settings.PricePerLiter
	if req.PricePerLiter != nil {
		price = *req.PricePerLiter
	}
	if price < 0 {
		Error(c, dairyerr.InvalidField("price_per_liter", "must not be negative"))
		return
	}

	var result service.Aggregation
	err := h.locked(func() (err error) {
		result, err = h.services.Milk.Aggregate(req.Date, price)
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) milkByAnimal(c *gin.Context) {
	if !authorize(c, service.ActionMilkByAnimal) {
		return
	}

	var report service.MilkReport
	err := h.locked(func() (err error) {
		report, err = h.services.Milk.ByAnimalID(c.Param("id"))
		return err
	})
	if err != nil {
		Error(c, err)
		return
	}
	if report.Entries == nil {
		report.Entries = []model.MilkReportEntry{}
	}

	status := http.StatusOK
	if !report.Found {
		status = http.StatusNotFound
	}
	c.JSON(status, report)
}

// Locked runs fn under the same mutex as API requests, for background
// jobs that touch the stores.
func (h *Handler) Locked(fn func() error) error {
	return h.locked(fn)
}
