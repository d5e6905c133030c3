package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*movementRepo)(nil)

type movementRepo struct {
	view  func(func(*state) error) error
	write func(func(*state) error) error
	fail  func(op string) error
}

func (r *movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := r.fail("movements.create"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		if _, ok := st.supplies[m.SupplyID]; !ok {
			return fmt.Errorf("create stock movement: insumo %s inexistente (llave foránea)", m.SupplyID)
		}
		if _, ok := st.seq[m.ID]; ok {
			return fmt.Errorf("create stock movement: id duplicado %s", m.ID)
		}
		cp := *m
		st.nextSeq++
		st.seq[cp.ID] = st.nextSeq
		st.movements = append(st.movements, &cp)
		return nil
	})
}

// ListBySupply ordena por CreatedAt descendente y, a igual instante, por orden de inserción inverso.
func (r *movementRepo) ListBySupply(ctx context.Context, supplyID string, limit, offset int) ([]*entity.StockMovement, error) {
	if err := r.fail("movements.list"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type row struct {
		m   *entity.StockMovement
		seq int64
	}
	var rows []row
	err := r.view(func(st *state) error {
		for _, m := range st.movements {
			if m.SupplyID == supplyID {
				cp := *m
				rows = append(rows, row{m: &cp, seq: st.seq[m.ID]})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.CreatedAt.Equal(rows[j].m.CreatedAt) {
			return rows[i].m.CreatedAt.After(rows[j].m.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.m)
	}
	return page(out, limit, offset), nil
}
