package entity

type CustomerType string

const (
	CustomerTypeHotel       CustomerType = "hotel"
	CustomerTypeHairdresser CustomerType = "hairdresser"
	CustomerTypePharmacy    CustomerType = "pharmacy"
)

func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeHotel, CustomerTypeHairdresser, CustomerTypePharmacy:
		return true
	}
	return false
}

type Customer struct {
	Base
	Name         string       `db:"name"`
	CustomerType CustomerType `db:"customer_type"`
	Email        string       `db:"email"`
	Phone        *string      `db:"phone"`
	Address      *string      `db:"address"`
	TaxID        *string      `db:"tax_id"`
}
