package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	"github.com/jhoicas/trace-warehouse/internal/domain/repository"
	"github.com/jhoicas/trace-warehouse/internal/domain/scope"
)

// ApplyMovementUseCase aplica movimientos al ledger y a la proyección de
// stock de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback. Es el único escritor de la proyección.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento.
// Los campos auxiliares (Description, Location, Status, Supplier, EntryDate)
// solo tienen efecto en movimientos IN: sobrescriben la proyección únicamente
// si vienen informados (merge selectivo).
type MovementInput struct {
	Type        string
	SKU         string
	Quantity    int64
	Source      string // MANUAL o AI; vacío = MANUAL
	Description string
	Location    string
	Status      string
	Supplier    string
	EntryDate   *time.Time
	DocumentRef string

	// Details fija el texto de contexto del movimiento; si viene vacío se
	// arma a partir de descripción, supplier y ubicación.
	Details string
}

// ApplyMovement valida la entrada, resuelve el registro del SKU bajo el scope
// y aplica IN/OUT dentro de una transacción. Política estricta de salidas:
// un OUT que dejaría la cantidad negativa falla con ErrInsufficientStock y
// no muta nada.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, sc scope.Scope, in MovementInput) (*entity.StockRecord, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	// Enforcement estricto de supplier: un caller restringido siempre opera
	// como su propio tenant, ignorando el supplier enviado por el cliente.
	if sc.Restricted() {
		in.Supplier = sc.Tenant()
	}

	var result *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()
		var (
			rec *entity.StockRecord
			err error
		)
		switch in.Type {
		case entity.MovementTypeIN:
			rec, err = applyIn(movRepo, stockRepo, sc, in, now)
		case entity.MovementTypeOUT:
			rec, err = applyOut(movRepo, stockRepo, sc, in, now)
		}
		if err != nil {
			return err
		}
		result = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmImport aplica un movimiento IN por cada línea importada, todo dentro
// de una sola transacción: si una línea falla se revierte el lote completo.
func (uc *ApplyMovementUseCase) ConfirmImport(ctx context.Context, sc scope.Scope, items []dto.ImportItem) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
		now := time.Now()
		for _, item := range items {
			in := MovementInput{
				Type:        entity.MovementTypeIN,
				SKU:         item.SKU,
				Quantity:    item.Quantity,
				Source:      entity.SourceAI,
				Description: item.Description,
				Location:    item.Location,
				Supplier:    item.Supplier,
			}
			if err := validateInput(&in); err != nil {
				return err
			}
			if sc.Restricted() {
				in.Supplier = sc.Tenant()
			}
			in.Details = fmt.Sprintf("AI Import from %s", in.Supplier)
			if _, err := applyIn(movRepo, stockRepo, sc, in, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// validateInput normaliza y valida la entrada antes de tocar estado.
func validateInput(in *MovementInput) error {
	in.SKU = strings.TrimSpace(in.SKU)
	if in.SKU == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return domain.ErrInvalidInput
	}
	switch in.Source {
	case "":
		in.Source = entity.SourceManual
	case entity.SourceManual, entity.SourceAI:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// applyIn crea o incrementa la proyección del SKU y registra el movimiento.
func applyIn(movRepo repository.MovementRepository, stockRepo repository.StockRepository, sc scope.Scope, in MovementInput, now time.Time) (*entity.StockRecord, error) {
	rec, err := stockRepo.GetBySKUForUpdate(in.SKU)
	if err != nil {
		return nil, err
	}
	if rec != nil && !sc.Allows(rec.Supplier) {
		return nil, domain.ErrForbidden
	}
	if rec == nil {
		entryDate := now
		if in.EntryDate != nil {
			entryDate = *in.EntryDate
		}
		rec = &entity.StockRecord{
			ID:          uuid.New().String(),
			SKU:         in.SKU,
			Description: in.Description,
			Quantity:    in.Quantity,
			Location:    defaultString(in.Location, "General"),
			Status:      defaultString(in.Status, entity.StatusReleased),
			Supplier:    in.Supplier,
			EntryDate:   entryDate,
			UpdatedAt:   now,
		}
		if err := stockRepo.Create(rec); err != nil {
			return nil, err
		}
	} else {
		rec.Quantity += in.Quantity
		// Merge selectivo: solo se sobrescribe lo que el caller informó.
		if in.Location != "" {
			rec.Location = in.Location
		}
		if in.Status != "" {
			rec.Status = in.Status
		}
		if in.Supplier != "" {
			rec.Supplier = in.Supplier
		}
		if in.EntryDate != nil {
			rec.EntryDate = *in.EntryDate
		}
		rec.UpdatedAt = now
		if err := stockRepo.Update(rec); err != nil {
			return nil, err
		}
	}
	if err := appendMovement(movRepo, rec, in, now); err != nil {
		return nil, err
	}
	return rec, nil
}

// applyOut descuenta de la proyección y registra la salida. Sin registro
// previo no hay nada que sacar (ErrNotFound); descontar por debajo de cero
// está prohibido (ErrInsufficientStock).
func applyOut(movRepo repository.MovementRepository, stockRepo repository.StockRepository, sc scope.Scope, in MovementInput, now time.Time) (*entity.StockRecord, error) {
	rec, err := stockRepo.GetBySKUForUpdate(in.SKU)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if !sc.Allows(rec.Supplier) {
		return nil, domain.ErrForbidden
	}
	if rec.Quantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	rec.Quantity -= in.Quantity
	rec.UpdatedAt = now
	if err := stockRepo.Update(rec); err != nil {
		return nil, err
	}
	if err := appendMovement(movRepo, rec, in, now); err != nil {
		return nil, err
	}
	return rec, nil
}

// appendMovement arma el registro inmutable del ledger. El tenant se escribe
// de forma estructural (columna propia) tomándolo de la proyección ya resuelta.
func appendMovement(movRepo repository.MovementRepository, rec *entity.StockRecord, in MovementInput, now time.Time) error {
	mov := &entity.Movement{
		Type:        in.Type,
		Source:      in.Source,
		SKU:         rec.SKU,
		Quantity:    in.Quantity,
		Tenant:      rec.Supplier,
		Details:     buildDetails(in),
		DocumentRef: defaultString(in.DocumentRef, "Manual Entry"),
		Timestamp:   now,
	}
	_, err := movRepo.Append(mov)
	return err
}

// buildDetails arma el texto de contexto del movimiento: en entradas incluye
// supplier y ubicación; en salidas sin descripción queda "Manual Exit".
func buildDetails(in MovementInput) string {
	if in.Details != "" {
		return in.Details
	}
	if in.Type == entity.MovementTypeOUT {
		return defaultString(in.Description, "Manual Exit")
	}
	var parts []string
	if in.Supplier != "" {
		parts = append(parts, "Supplier: "+in.Supplier)
	}
	if in.Location != "" {
		parts = append(parts, "Loc: "+in.Location)
	}
	ctxInfo := strings.Join(parts, ", ")
	switch {
	case in.Description != "" && ctxInfo != "":
		return fmt.Sprintf("%s (%s)", in.Description, ctxInfo)
	case in.Description != "":
		return in.Description
	default:
		return ctxInfo
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
