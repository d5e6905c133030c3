package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-dental-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// Límites de los campos del insumo y de la búsqueda.
const (
	MaxNameLength        = 200
	MaxCodeLength        = 50
	MaxDescriptionLength = 1000
	MaxSearchLength      = 100
	InitialStockReason   = "Stock inicial"
)

// SupplyUseCase casos de uso CRUD y búsqueda de insumos. Quantity solo cambia vía el ledger.
type SupplyUseCase struct {
	store  repository.Store
	ledger *inventory.LedgerUseCase
	log    *logger.Logger
	now    func() time.Time
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(store repository.Store, ledger *inventory.LedgerUseCase, log *logger.Logger) *SupplyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplyUseCase{store: store, ledger: ledger, log: log.Named("supplies"), now: time.Now}
}

// Create crea un insumo. Si trae cantidad inicial, se registra como movimiento IN
// ("Stock inicial") en la misma transacción, de modo que el ledger cuadre desde el inicio.
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := uc.now().UTC().Truncate(time.Microsecond)
	supply := &entity.Supply{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        in.Code,
		Description: strings.TrimSpace(in.Description),
		MinStock:    in.MinStock,
		UnitCost:    decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Quantity == 0 && in.UnitCost != nil {
		supply.UnitCost = *in.UnitCost
	}

	tx, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, domain.WrapStore("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Supplies().Create(ctx, supply); err != nil {
		return nil, domain.WrapStore("create supply", err)
	}
	if in.Quantity > 0 {
		res, err := uc.ledger.ApplyWithinTx(ctx, tx, inventory.MovementInput{
			SupplyID: supply.ID,
			Type:     entity.MovementTypeIN,
			Quantity: in.Quantity,
			Reason:   InitialStockReason,
			UnitCost: in.UnitCost,
		})
		if err != nil {
			return nil, err
		}
		supply = res.Supply
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.WrapStore("commit transaction", err)
	}

	uc.log.Info().Str("supply_id", supply.ID).Str("code", supply.Code).Int("quantity", supply.Quantity).Msg("insumo creado")
	return dto.ToSupplyResponse(supply), nil
}

// GetByID obtiene un insumo por ID.
func (uc *SupplyUseCase) GetByID(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	s, err := uc.store.Supplies().GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, domain.WrapStore("get supply", err)
	}
	if s == nil {
		return nil, domain.ErrSupplyNotFound
	}
	return dto.ToSupplyResponse(s), nil
}

// GetByCode obtiene un insumo por su código.
func (uc *SupplyUseCase) GetByCode(ctx context.Context, code string) (*dto.SupplyResponse, error) {
	s, err := uc.store.Supplies().GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, domain.WrapStore("get supply by code", err)
	}
	if s == nil {
		return nil, domain.ErrSupplyNotFound
	}
	return dto.ToSupplyResponse(s), nil
}

// Update modifica nombre, código, descripción o stock mínimo. No permite cambiar la cantidad.
func (uc *SupplyUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplyRequest) (*dto.SupplyResponse, error) {
	s, err := uc.store.Supplies().GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStore("get supply", err)
	}
	if s == nil {
		return nil, domain.ErrSupplyNotFound
	}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		s.Code = strings.TrimSpace(*in.Code)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.MinStock != nil {
		s.MinStock = *in.MinStock
	}
	if err := validateFields(s.Name, s.Code, s.Description, s.MinStock); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.now().UTC().Truncate(time.Microsecond)
	if err := uc.store.Supplies().Update(ctx, s); err != nil {
		return nil, domain.WrapStore("update supply", err)
	}
	return dto.ToSupplyResponse(s), nil
}

// Delete elimina el insumo y, en cascada, su historial de movimientos.
func (uc *SupplyUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Supplies().Delete(ctx, id); err != nil {
		return domain.WrapStore("delete supply", err)
	}
	uc.log.Info().Str("supply_id", id).Msg("insumo eliminado")
	return nil
}

// List devuelve una página del catálogo ordenada por nombre.
func (uc *SupplyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	return uc.page(ctx, "", page)
}

// Search busca por subcadena en nombre o código. Query vacío equivale a List.
func (uc *SupplyUseCase) Search(ctx context.Context, query string, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	if utf8.RuneCountInString(query) > MaxSearchLength {
		v := domain.NewValidationError()
		v.Add("q", "la búsqueda debe tener 100 caracteres o menos")
		return nil, v
	}
	return uc.page(ctx, SanitizeSearchQuery(query), page)
}

func (uc *SupplyUseCase) page(ctx context.Context, query string, page dto.PageRequest) (*dto.SupplyListResponse, error) {
	page.Normalize()
	total, err := uc.store.Supplies().Count(ctx, query)
	if err != nil {
		return nil, domain.WrapStore("count supplies", err)
	}
	list, err := uc.store.Supplies().List(ctx, repository.SupplyFilter{
		Query:  query,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, domain.WrapStore("list supplies", err)
	}
	items := make([]dto.SupplyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.ToSupplyResponse(s))
	}
	return &dto.SupplyListResponse{
		Supplies:   items,
		Total:      total,
		Page:       page.Page,
		TotalPages: dto.TotalPages(total, page.Limit),
	}, nil
}

// SanitizeSearchQuery quita los caracteres <>"' y los espacios de los extremos.
func SanitizeSearchQuery(q string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, q))
}

func validateCreate(in dto.CreateSupplyRequest) error {
	v := domain.NewValidationError()
	collectFieldErrors(v, in.Name, in.Code, in.Description, in.MinStock)
	switch {
	case in.Quantity < 0:
		v.Add("quantity", "quantity no puede ser negativa")
	case in.Quantity > domaininv.MaxQuantity:
		v.Add("quantity", "quantity no puede superar 2147483647")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		v.Add("unitCost", "unitCost no puede ser negativo")
	}
	return v.OrNil()
}

func validateFields(name, code, description string, minStock int) error {
	v := domain.NewValidationError()
	collectFieldErrors(v, name, code, description, minStock)
	return v.OrNil()
}

func collectFieldErrors(v *domain.ValidationError, name, code, description string, minStock int) {
	switch {
	case name == "":
		v.Add("name", "name es requerido")
	case utf8.RuneCountInString(name) > MaxNameLength:
		v.Add("name", "name debe tener 200 caracteres o menos")
	}
	switch {
	case code == "":
		v.Add("code", "code es requerido")
	case utf8.RuneCountInString(code) > MaxCodeLength:
		v.Add("code", "code debe tener 50 caracteres o menos")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		v.Add("description", "description debe tener 1000 caracteres o menos")
	}
	switch {
	case minStock < 0:
		v.Add("minStock", "minStock no puede ser negativo")
	case minStock > domaininv.MaxQuantity:
		v.Add("minStock", "minStock no puede superar 2147483647")
	}
}
