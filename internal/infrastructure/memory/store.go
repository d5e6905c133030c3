// Package memory implementa el almacén transaccional en proceso. Se usa en pruebas y con
// STORE_DRIVER=memory; no persiste nada entre reinicios.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)

var errTxDone = errors.New("transacción finalizada")

// state es una foto completa de los datos; las transacciones trabajan sobre una copia.
type state struct {
	supplies  map[string]*entity.Supply
	movements []*entity.StockMovement // en orden de inserción
	seq       map[string]int64        // id de movimiento -> orden de inserción
	nextSeq   int64
}

func newState() *state {
	return &state{
		supplies: map[string]*entity.Supply{},
		seq:      map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		supplies:  make(map[string]*entity.Supply, len(s.supplies)),
		movements: make([]*entity.StockMovement, len(s.movements)),
		seq:       make(map[string]int64, len(s.seq)),
		nextSeq:   s.nextSeq,
	}
	for id, sp := range s.supplies {
		cp := *sp
		c.supplies[id] = &cp
	}
	copy(c.movements, s.movements) // los movimientos son inmutables
	for id, n := range s.seq {
		c.seq[id] = n
	}
	return c
}

// Store guarda los datos en memoria. Las transacciones de escritura se serializan
// con un semáforo de un cupo, equivalente al bloqueo de fila del almacén SQL.
type Store struct {
	mu      sync.RWMutex
	data    *state
	writeMu chan struct{}

	// FailNext, si no es nil, se consulta antes de cada operación; un error devuelto
	// se propaga tal cual. Permite simular caídas del almacenamiento en pruebas.
	FailNext func(op string) error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState(), writeMu: make(chan struct{}, 1)}
}

// Begin adquiere el cupo de escritura (respetando ctx) y abre una transacción sobre una copia.
func (s *Store) Begin(ctx context.Context) (repository.Tx, error) {
	if err := s.fail("begin"); err != nil {
		return nil, err
	}
	select {
	case s.writeMu <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()
	return &Tx{store: s, work: work}, nil
}

func (s *Store) Supplies() repository.SupplyRepository {
	return &supplyRepo{view: s.readView, write: s.autocommit, fail: s.fail}
}

func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{view: s.readView, write: s.autocommit, fail: s.fail}
}

// Ping siempre responde, salvo fallo simulado.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.fail("ping"); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Store) fail(op string) error {
	if s.FailNext == nil {
		return nil
	}
	return s.FailNext(op)
}

// readView ejecuta fn con el estado confirmado bajo lectura compartida.
func (s *Store) readView(fn func(*state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// autocommit ejecuta una escritura fuera de transacción como transacción de una sola sentencia.
func (s *Store) autocommit(fn func(*state) error) error {
	s.writeMu <- struct{}{}
	defer func() { <-s.writeMu }()
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()
	if err := fn(work); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// Tx transacción en memoria: los cambios viven en work hasta Commit.
type Tx struct {
	store *Store
	work  *state
	done  bool
	mu    sync.Mutex
}

func (t *Tx) Supplies() repository.SupplyRepository {
	return &supplyRepo{view: t.use, write: t.use, fail: t.store.fail}
}

func (t *Tx) Movements() repository.StockMovementRepository {
	return &movementRepo{view: t.use, write: t.use, fail: t.store.fail}
}

func (t *Tx) use(fn func(*state) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxDone
	}
	return fn(t.work)
}

// Commit publica la copia de trabajo y libera el cupo de escritura.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxDone
	}
	if err := t.store.fail("commit"); err != nil {
		t.finish()
		return err
	}
	if err := ctx.Err(); err != nil {
		t.finish()
		return err
	}
	t.store.mu.Lock()
	t.store.data = t.work
	t.store.mu.Unlock()
	t.finish()
	return nil
}

// Rollback descarta la copia de trabajo. Sin efecto si ya terminó.
func (t *Tx) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.done {
		t.finish()
	}
	return nil
}

func (t *Tx) finish() {
	t.done = true
	t.work = nil
	<-t.store.writeMu
}
