package request

type CustomerRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	CustomerType string  `json:"customer_type" validate:"required,oneof=hotel hairdresser pharmacy"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
}

type CustomerUpdateRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerType *string `json:"customer_type,omitempty" validate:"omitempty,oneof=hotel hairdresser pharmacy"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty"`
	TaxID        *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
}
