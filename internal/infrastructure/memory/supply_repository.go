package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*supplyRepo)(nil)

type supplyRepo struct {
	view  func(func(*state) error) error
	write func(func(*state) error) error
	fail  func(op string) error
}

func (r *supplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	if err := r.check(ctx, "supplies.create"); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		if _, ok := st.supplies[s.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.supplies {
			if other.Code == s.Code {
				return domain.ErrDuplicate
			}
		}
		cp := *s
		st.supplies[s.ID] = &cp
		return nil
	})
}

func (r *supplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	return r.find(ctx, "supplies.get", func(s *entity.Supply) bool { return s.ID == id })
}

func (r *supplyRepo) GetByCode(ctx context.Context, code string) (*entity.Supply, error) {
	return r.find(ctx, "supplies.get_by_code", func(s *entity.Supply) bool { return s.Code == code })
}

// GetForUpdate dentro de una Tx ya tiene el cupo de escritura, así que basta con leer.
func (r *supplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.find(ctx, "supplies.get_for_update", func(s *entity.Supply) bool { return s.ID == id })
}

func (r *supplyRepo) find(ctx context.Context, op string, match func(*entity.Supply) bool) (*entity.Supply, error) {
	if err := r.check(ctx, op); err != nil {
		return nil, err
	}
	var found *entity.Supply
	err := r.view(func(st *state) error {
		for _, s := range st.supplies {
			if match(s) {
				cp := *s
				found = &cp
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *supplyRepo) UpdateStock(ctx context.Context, id string, quantity int, unitCost decimal.Decimal, updatedAt time.Time) error {
	if err := r.check(ctx, "supplies.update_stock"); err != nil {
		return err
	}
	if quantity < 0 {
		return fmt.Errorf("update supply stock: cantidad negativa %d", quantity)
	}
	return r.write(func(st *state) error {
		s, ok := st.supplies[id]
		if !ok {
			return domain.ErrSupplyNotFound
		}
		s.Quantity = quantity
		s.UnitCost = unitCost
		s.UpdatedAt = updatedAt
		return nil
	})
}

func (r *supplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	if err := r.check(ctx, "supplies.update"); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		cur, ok := st.supplies[s.ID]
		if !ok {
			return domain.ErrSupplyNotFound
		}
		for id, other := range st.supplies {
			if id != s.ID && other.Code == s.Code {
				return domain.ErrDuplicate
			}
		}
		cur.Name = s.Name
		cur.Code = s.Code
		cur.Description = s.Description
		cur.MinStock = s.MinStock
		cur.UpdatedAt = s.UpdatedAt
		return nil
	})
}

// Delete borra el insumo y sus movimientos.
func (r *supplyRepo) Delete(ctx context.Context, id string) error {
	if err := r.check(ctx, "supplies.delete"); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		if _, ok := st.supplies[id]; !ok {
			return domain.ErrSupplyNotFound
		}
		delete(st.supplies, id)
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if m.SupplyID == id {
				delete(st.seq, m.ID)
				continue
			}
			kept = append(kept, m)
		}
		st.movements = kept
		return nil
	})
}

func (r *supplyRepo) List(ctx context.Context, f repository.SupplyFilter) ([]*entity.Supply, error) {
	if err := r.check(ctx, "supplies.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Supply, 0)
	err := r.view(func(st *state) error {
		for _, s := range st.supplies {
			if !matches(s, f.Query) {
				continue
			}
			if f.LowStockOnly && !s.IsLowStock() {
				continue
			}
			cp := *s
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *supplyRepo) Count(ctx context.Context, query string) (int, error) {
	if err := r.check(ctx, "supplies.count"); err != nil {
		return 0, err
	}
	n := 0
	err := r.view(func(st *state) error {
		for _, s := range st.supplies {
			if matches(s, query) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *supplyRepo) Stats(ctx context.Context) (repository.SupplyStats, error) {
	if err := r.check(ctx, "supplies.stats"); err != nil {
		return repository.SupplyStats{}, err
	}
	st := repository.SupplyStats{InventoryValue: decimal.Zero}
	err := r.view(func(data *state) error {
		for _, s := range data.supplies {
			st.TotalSupplies++
			switch s.StockStatus() {
			case entity.StockStatusLow:
				st.LowStockCount++
			case entity.StockStatusWarning:
				st.WarningCount++
			}
			st.TotalUnits += int64(s.Quantity)
			st.InventoryValue = st.InventoryValue.Add(s.StockValue())
		}
		return nil
	})
	return st, err
}

func (r *supplyRepo) check(ctx context.Context, op string) error {
	if err := r.fail(op); err != nil {
		return err
	}
	return ctx.Err()
}

// matches compara sin distinguir mayúsculas ni formas Unicode equivalentes (case folding).
func matches(s *entity.Supply, query string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	q := fold.String(query)
	return strings.Contains(fold.String(s.Name), q) || strings.Contains(fold.String(s.Code), q)
}

func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return list[:0]
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
