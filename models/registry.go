package models

// All devuelve todos los modelos persistidos, en orden de dependencia,
// para AutoMigrate y para las migraciones de la CLI.
func All() []any {
	return []any{
		&Tenant{},
		&Unit{},
		&User{},
		&Invoice{},
		&MeterReading{},
		&PaymentProof{},
		&Expense{},
		&CommonArea{},
		&Reservation{},
		&BlockedDate{},
		&Incident{},
		&Notice{},
	}
}
