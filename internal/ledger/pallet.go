package ledger

import (
	"context"
	"fmt"
	"time"

	"go-wms-feed/internal/model"
)

// TransactionStore is the append-only pallet ledger storage.
type TransactionStore interface {
	AppendPallet(ctx context.Context, tx model.PalletTransaction) error
	AllPallet(ctx context.Context) ([]model.PalletTransaction, error)
	PalletBetween(ctx context.Context, from, to *time.Time) ([]model.PalletTransaction, error)
}

// KindStock is the replayed position of one pallet kind.
type KindStock struct {
	In    int
	Out   int
	Stock int
}

type Ledger struct {
	store TransactionStore
}

func New(store TransactionStore) *Ledger {
	return &Ledger{store: store}
}

// Append validates and appends one ledger entry. Entries are never
// mutated afterwards.
func (l *Ledger) Append(ctx context.Context, tx model.PalletTransaction) error {
	if tx.Quantity <= 0 {
		return fmt.Errorf("pallet quantity must be positive, got %d", tx.Quantity)
	}

	switch tx.Action {
	case model.PalletActionIn, model.PalletActionOut:
	default:
		return fmt.Errorf("unknown pallet action %q", tx.Action)
	}

	valid := false
	for _, k := range model.PalletKinds {
		if tx.PalletType == k {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown pallet kind %q", tx.PalletType)
	}

	return l.store.AppendPallet(ctx, tx)
}

// Stock replays the entire unfiltered ledger: per kind,
// sum(IN) - sum(OUT). Replay makes the result independent of
// insertion order and tolerant of backdated entries.
func (l *Ledger) Stock(ctx context.Context) (map[string]KindStock, error) {
	txs, err := l.store.AllPallet(ctx)
	if err != nil {
		return nil, err
	}

	stock := make(map[string]KindStock, len(model.PalletKinds))
	for _, k := range model.PalletKinds {
		stock[k] = KindStock{}
	}

	for _, tx := range txs {
		s, ok := stock[tx.PalletType]
		if !ok {
			continue
		}
		switch tx.Action {
		case model.PalletActionIn:
			s.In += tx.Quantity
			s.Stock += tx.Quantity
		case model.PalletActionOut:
			s.Out += tx.Quantity
			s.Stock -= tx.Quantity
		}
		stock[tx.PalletType] = s
	}

	return stock, nil
}

// History returns ledger entries inside the date range. The filter is
// display-only; Stock always replays everything.
func (l *Ledger) History(ctx context.Context, from, to *time.Time) ([]model.PalletTransaction, error) {
	return l.store.PalletBetween(ctx, from, to)
}
