package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.POST("/categories", h.CreateCategory)
	rg.GET("/services", h.ListServices)
	rg.POST("/services", h.CreateService)
	rg.GET("/doctors", h.ListDoctors)
	rg.POST("/doctors", h.CreateDoctor)
	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.POST("/customers", h.CreateCustomer)
}

func (h *Handler) ListCategories(c *gin.Context) {
	out, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	out, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": out})
}

func (h *Handler) ListServices(c *gin.Context) {
	out, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": out})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	out, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create service")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": out})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	out, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list doctors")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doctors": out})
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	out, err := h.service.CreateDoctor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create doctor")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"doctor": out})
}

func (h *Handler) ListProducts(c *gin.Context) {
	out, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": out})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	out, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create product")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": out})
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	out, err := h.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create customer")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"customer": out})
}
