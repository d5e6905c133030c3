package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

const supplyColumns = `id, name, code, COALESCE(description, ''), quantity, min_stock, unit_cost, created_at, updated_at`

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de persistencia para insumos. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste un nuevo insumo. Código duplicado -> domain.ErrDuplicate.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, name, code, description, quantity, min_stock, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Code, s.Description, s.Quantity, s.MinStock, s.UnitCost, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("create supply", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get supply", `SELECT `+supplyColumns+` FROM supplies WHERE id = $1`, id)
}

// GetByCode obtiene un insumo por su código único.
func (r *SupplyRepo) GetByCode(ctx context.Context, code string) (*entity.Supply, error) {
	return r.getOne(ctx, "get supply by code", `SELECT `+supplyColumns+` FROM supplies WHERE code = $1`, code)
}

// GetForUpdate obtiene el insumo y bloquea la fila hasta el fin de la transacción.
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get supply for update", `SELECT `+supplyColumns+` FROM supplies WHERE id = $1 FOR UPDATE`, id)
}

func (r *SupplyRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.Supply, error) {
	s, err := scanSupply(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return s, nil
}

// UpdateStock actualiza cantidad, costo promedio y updated_at.
func (r *SupplyRepo) UpdateStock(ctx context.Context, id string, quantity int, unitCost decimal.Decimal, updatedAt time.Time) error {
	if !validID(id) {
		return domain.ErrSupplyNotFound
	}
	query := `UPDATE supplies SET quantity = $2, unit_cost = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, unitCost, updatedAt)
	if err != nil {
		return wrapErr("update supply stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplyNotFound
	}
	return nil
}

// Update modifica los datos descriptivos del insumo (nunca la cantidad).
func (r *SupplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	if !validID(s.ID) {
		return domain.ErrSupplyNotFound
	}
	query := `
		UPDATE supplies
		SET name = $2, code = $3, description = NULLIF($4, ''), min_stock = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Code, s.Description, s.MinStock, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("update supply", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplyNotFound
	}
	return nil
}

// Delete elimina el insumo; sus movimientos se borran en cascada (FK ON DELETE CASCADE).
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrSupplyNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete supply", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSupplyNotFound
	}
	return nil
}

// List devuelve insumos ordenados por nombre y código.
func (r *SupplyRepo) List(ctx context.Context, f repository.SupplyFilter) ([]*entity.Supply, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + supplyColumns + ` FROM supplies WHERE 1=1`)
	if f.Query != "" {
		args = append(args, likePattern(f.Query))
		fmt.Fprintf(&sb, ` AND (name ILIKE $%d OR code ILIKE $%d)`, len(args), len(args))
	}
	if f.LowStockOnly {
		sb.WriteString(` AND quantity <= min_stock`)
	}
	sb.WriteString(` ORDER BY name ASC, code ASC`)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, wrapErr("list supplies", err)
	}
	defer rows.Close()

	out := make([]*entity.Supply, 0)
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list supplies", err)
	}
	return out, nil
}

// Count cuenta los insumos que coinciden con query (vacío = todos).
func (r *SupplyRepo) Count(ctx context.Context, query string) (int, error) {
	var (
		n   int
		err error
	)
	if query == "" {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM supplies`).Scan(&n)
	} else {
		err = r.q.QueryRow(ctx,
			`SELECT COUNT(*) FROM supplies WHERE name ILIKE $1 OR code ILIKE $1`,
			likePattern(query),
		).Scan(&n)
	}
	if err != nil {
		return 0, wrapErr("count supplies", err)
	}
	return n, nil
}

// Stats agrega conteos y valor del inventario en una sola consulta.
func (r *SupplyRepo) Stats(ctx context.Context) (repository.SupplyStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE quantity <= min_stock),
			COUNT(*) FILTER (WHERE quantity > min_stock AND quantity::bigint * 2 <= min_stock::bigint * 3),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(quantity * unit_cost), 0)
		FROM supplies`
	var st repository.SupplyStats
	err := r.q.QueryRow(ctx, query).Scan(
		&st.TotalSupplies, &st.LowStockCount, &st.WarningCount, &st.TotalUnits, &st.InventoryValue,
	)
	if err != nil {
		return repository.SupplyStats{}, wrapErr("supply stats", err)
	}
	return st, nil
}

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	if err := row.Scan(
		&s.ID, &s.Name, &s.Code, &s.Description, &s.Quantity, &s.MinStock,
		&s.UnitCost, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// likePattern escapa los comodines de LIKE y envuelve el texto en %...%.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
