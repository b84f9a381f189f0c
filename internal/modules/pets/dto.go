package pets

import "github.com/Nv-Lunar/ukk-pet-clinic/internal/domain"

type CreatePetRequest struct {
	Name    string `json:"name" binding:"required" validate:"required"`
	TypeID  int64  `json:"type_id" binding:"required" validate:"required"`
	Age     int    `json:"age" validate:"gte=0"`
	OwnerID int64  `json:"owner_id" binding:"required" validate:"required"`
}

type UpdatePetRequest struct {
	PetID   string `json:"pet_id"`
	Name    string `json:"name"`
	TypeID  int64  `json:"type_id"`
	Age     *int   `json:"age"`
	OwnerID int64  `json:"owner_id"`
}

type PetResponse struct {
	ID          int64  `json:"id"`
	PetID       string `json:"pet_id"`
	Name        string `json:"name"`
	TypeID      int64  `json:"type_id"`
	Age         int    `json:"age"`
	OwnerID     int64  `json:"owner_id"`
	DisplayName string `json:"display_name,omitempty"`
}

func toPetResponse(p *domain.Pet, ownerName string) PetResponse {
	resp := PetResponse{
		ID:      p.ID,
		PetID:   p.PetID,
		Name:    p.Name,
		TypeID:  p.TypeID,
		Age:     p.Age,
		OwnerID: p.OwnerID,
	}
	if ownerName != "" {
		resp.DisplayName = p.DisplayName(ownerName)
	}
	return resp
}
