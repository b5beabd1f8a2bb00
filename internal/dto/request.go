package dto

type CreateReservationRequest struct {
	ComplexID   string `json:"complex_id" validate:"required"`
	CourtID     string `json:"court_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	ClientName  string `json:"client_name" validate:"required"`
	ClientPhone string `json:"client_phone" validate:"required"`
}

type RegisterComplexRequest struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location" validate:"required"`
	AdminEmail string `json:"admin_email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateCourtRequest struct {
	Name        string   `json:"name" validate:"required"`
	Sport       string   `json:"sport" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

type UpdateCourtRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
	IsAvailable *bool    `json:"is_available"`
}
