package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/dottech/storefront/internal/core/domain"
	"github.com/dottech/storefront/internal/core/port"
)

var _ port.CartRepository = (*Store)(nil)

// cartKey is the single named key holding the serialized cart.
const cartKey = "cart"

type cartLine struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// A Store persists the cart in an embedded key-value database under
// one named key, an ordered sequence of line records.
type Store struct {
	db *leveldb.DB
}

func New(path string) (*Store, error) {
	const op = "Store"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open cart db: %w", op, err)
	}
	return &Store{db}, nil
}

func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	const op = "Store.Load"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err := s.db.Get([]byte(cartKey), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return domain.Cart{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ls []cartLine
	if err := json.Unmarshal(b, &ls); err != nil {
		// unreadable stored value degrades to an empty cart
		slog.Warn("failed to decode stored cart", "op", op, "err", err)
		return domain.Cart{}, nil
	}

	cart := make(domain.Cart, len(ls))
	for i, l := range ls {
		cart[i] = domain.CartLine{
			ID: l.ID, Name: l.Name, Price: l.Price, Qty: l.Qty,
		}
	}
	return cart, nil
}

func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	const op = "Store.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ls := make([]cartLine, len(cart))
	for i, l := range cart {
		ls[i] = cartLine{ID: l.ID, Name: l.Name, Price: l.Price, Qty: l.Qty}
	}

	b, err := json.Marshal(ls)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put([]byte(cartKey), b, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Close() {
	const op = "Store.Close"
	log := slog.With("op", op)

	log.Info("closing cart db...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart db is closed")
}
