package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"motorchat/internal/model"
	"motorchat/internal/utils"
)

// VehicleStore is the inventory surface the admin endpoints need.
type VehicleStore interface {
	List(ctx context.Context, limit, offset int) ([]model.Vehicle, int, error)
	GetByVIN(ctx context.Context, vin string) (*model.Vehicle, error)
	Insert(ctx context.Context, v *model.Vehicle) error
	VINExists(ctx context.Context, vin string) (bool, error)
}

// VehicleHandler serves the inventory admin endpoints.
type VehicleHandler struct {
	store        VehicleStore
	defaultLimit int
	maxLimit     int
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(store VehicleStore) *VehicleHandler {
	return &VehicleHandler{store: store, defaultLimit: 20, maxLimit: 100}
}

type createVehicleRequest struct {
	Brand        string          `json:"brand" binding:"required"`
	Model        string          `json:"model" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	Engine       string          `json:"engine"`
	FuelType     string          `json:"fuel_type" binding:"required"`
	Color        string          `json:"color"`
	MileageKM    int             `json:"mileage_km"`
	Doors        int             `json:"doors" binding:"required"`
	Transmission string          `json:"transmission" binding:"required"`
	BodyType     string          `json:"body_type" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	VIN          string          `json:"vin" binding:"required"`
}

// List handles GET /api/v1/vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	items, total, err := h.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar veículos."})
		return
	}
	if items == nil {
		items = []model.Vehicle{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get handles GET /api/v1/vehicles/:vin.
func (h *VehicleHandler) Get(c *gin.Context) {
	vin := utils.NormalizeVIN(c.Param("vin"))
	v, err := h.store.GetByVIN(c.Request.Context(), vin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao consultar veículo."})
		return
	}
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Veículo não encontrado."})
		return
	}
	c.JSON(http.StatusOK, v)
}

// Create handles POST /api/v1/vehicles.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido: " + err.Error()})
		return
	}
	if req.Doors != 2 && req.Doors != 4 && req.Doors != 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Número de portas deve ser 2, 4 ou 5."})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço não pode ser negativo."})
		return
	}
	vin := utils.NormalizeVIN(req.VIN)
	if !utils.ValidVIN(vin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VIN inválido."})
		return
	}

	exists, err := h.store.VINExists(c.Request.Context(), vin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao validar VIN."})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "VIN já cadastrado."})
		return
	}

	v := &model.Vehicle{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Engine:       req.Engine,
		FuelType:     req.FuelType,
		Color:        req.Color,
		MileageKM:    req.MileageKM,
		Doors:        req.Doors,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Price:        req.Price.Round(2),
		VIN:          vin,
	}
	if err := h.store.Insert(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao cadastrar veículo."})
		return
	}
	c.JSON(http.StatusCreated, v)
}
