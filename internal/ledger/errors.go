package ledger

import (
	"errors"

	"gorm.io/gorm"
)

// Taxonomía de errores del libro mayor. Los handlers los traducen a códigos
// HTTP; ninguno deja una mutación parcial en la base de datos.
var (
	ErrInvalidAmount    = errors.New("monto inválido: debe ser mayor que cero")
	ErrInvalidReading   = errors.New("lectura inválida: la lectura actual es menor a la anterior")
	ErrDuplicateReading = errors.New("el apartamento ya tiene lectura registrada este mes")
	ErrDuplicateBilling = errors.New("el ciclo de cuotas ya corrió este mes")
	ErrInvalidState     = errors.New("la operación no es válida en el estado actual")
	ErrNotFound         = errors.New("registro no encontrado")
)

// translateGormErr convierte los errores de GORM a la taxonomía propia.
func translateGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
