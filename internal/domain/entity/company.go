package entity

import "time"

// Company representa una organización/tenant del sistema (régie publicitaria, PME).
// TaxOperation y DefaultAmountBasis son la configuración fiscal que alimenta al calculador.
type Company struct {
	ID                 string
	Name               string
	TaxID              string // NINEA / NIF de la empresa
	Address            string
	Phone              string
	Email              string
	Currency           string // ISO 4217, p. ej. XOF, EUR
	TaxOperation       string // cumul | sequence
	DefaultAmountBasis string // HT | TTC
	Status             string // active, suspended, inactive
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleBilling      = "billing"
	ModuleBillboards   = "billboards"
	ModuleTransactions = "transactions"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
