package pets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"
	"github.com/Nv-Lunar/ukk-pet-clinic/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pets", h.CreatePet)
	rg.GET("/pets", h.ListPets)
	rg.GET("/pets/:id", h.GetPet)
	rg.PUT("/pets/:id", h.UpdatePet)
}

func (h *Handler) CreatePet(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.CreatePet(c.Request.Context(), req)
	if err != nil {
		h.writePetError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pet": toPetResponse(p, "")})
}

func (h *Handler) GetPet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet id")
		return
	}
	p, ownerName, err := h.service.GetPet(c.Request.Context(), id)
	if err != nil {
		h.writePetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": toPetResponse(p, ownerName)})
}

func (h *Handler) ListPets(c *gin.Context) {
	var (
		list []domain.Pet
		err  error
	)
	if ownerParam := c.Query("owner_id"); ownerParam != "" {
		ownerID, perr := strconv.ParseInt(ownerParam, 10, 64)
		if perr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid owner_id")
			return
		}
		list, err = h.service.ListByOwner(c.Request.Context(), ownerID)
	} else {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		list, err = h.service.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		h.writePetError(c, err)
		return
	}
	out := make([]PetResponse, 0, len(list))
	for i := range list {
		out = append(out, toPetResponse(&list[i], ""))
	}
	response.Success(c, http.StatusOK, gin.H{"pets": out})
}

func (h *Handler) UpdatePet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet id")
		return
	}
	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.UpdatePet(c.Request.Context(), id, req)
	if err != nil {
		h.writePetError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pet": toPetResponse(p, "")})
}

func (h *Handler) writePetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pet data")
	case errors.Is(err, ErrIdentifierImmutable):
		response.Error(c, http.StatusBadRequest, "IDENTIFIER_IMMUTABLE", ErrIdentifierImmutable.Error())
	case errors.Is(err, ErrDuplicateIdentifier):
		response.Error(c, http.StatusConflict, "DUPLICATE_IDENTIFIER", ErrDuplicateIdentifier.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process pet")
	}
}
