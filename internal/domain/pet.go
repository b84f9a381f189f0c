package domain

import "fmt"

// Pet is a registered animal. PetID (PET_000001, ...) is assigned once at
// creation and never changes afterwards.
type Pet struct {
	ID       int64
	PetID    string
	Name     string
	TypeID   int64
	Age      int
	OwnerID  int64
	TypeName string
	Rate     float64
}

// DisplayName renders the pet together with its owner, matching how the
// clinic lists pets in booking forms.
func (p *Pet) DisplayName(ownerName string) string {
	return fmt.Sprintf("%s (%s)", p.Name, ownerName)
}

// PetCategory scales service price and duration for its animals.
type PetCategory struct {
	ID   int64
	Name string
	Rate float64
}
