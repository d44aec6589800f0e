// Package ledger implements average-cost buy/sell accounting over an
// immutable portfolio snapshot.
//
// Every operation is a pure function of (snapshot, trade) and returns a
// new snapshot or a rejection; the input snapshot is never mutated. The
// ledger holds no state of its own, so callers are responsible for
// serializing concurrent trades against the same portfolio (the persisted
// session store does this with a version check).
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// Buy purchases quantity units of ticker at price. The cost is debited
// from cash; an existing holding is merged with a weighted-average cost
// basis, otherwise a new holding is appended.
func Buy(snap models.Snapshot, ticker, name string, price decimal.Decimal, quantity int64) (models.Snapshot, error) {
	if err := validate(price, quantity); err != nil {
		return models.Snapshot{}, err
	}

	cost := price.Mul(decimal.NewFromInt(quantity))
	if cost.GreaterThan(snap.Cash) {
		return models.Snapshot{}, ErrInsufficientFunds
	}

	next := clone(snap)
	next.Cash = snap.Cash.Sub(cost)

	for i, h := range next.Holdings {
		if h.Ticker != ticker {
			continue
		}
		totalValue := h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity)).Add(cost)
		totalQuantity := h.Quantity + quantity
		next.Holdings[i].Quantity = totalQuantity
		next.Holdings[i].AvgPrice = totalValue.Div(decimal.NewFromInt(totalQuantity))
		return next, nil
	}

	next.Holdings = append(next.Holdings, models.Holding{
		Ticker:   ticker,
		Name:     name,
		Quantity: quantity,
		AvgPrice: price,
	})
	return next, nil
}

// Sell disposes of quantity units of ticker at price. Proceeds are
// credited to cash. Selling the full position removes the holding;
// a partial sale decrements quantity and leaves the cost basis
// untouched. Realized gain/loss is the caller's concern.
func Sell(snap models.Snapshot, ticker string, price decimal.Decimal, quantity int64) (models.Snapshot, error) {
	if err := validate(price, quantity); err != nil {
		return models.Snapshot{}, err
	}

	idx := -1
	for i, h := range snap.Holdings {
		if h.Ticker == ticker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Snapshot{}, ErrNoSuchHolding
	}
	if quantity > snap.Holdings[idx].Quantity {
		return models.Snapshot{}, ErrInsufficientQuantity
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))
	next := clone(snap)
	next.Cash = snap.Cash.Add(proceeds)

	if quantity == next.Holdings[idx].Quantity {
		next.Holdings = append(next.Holdings[:idx], next.Holdings[idx+1:]...)
	} else {
		next.Holdings[idx].Quantity -= quantity
	}
	return next, nil
}

func validate(price decimal.Decimal, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

func clone(snap models.Snapshot) models.Snapshot {
	holdings := make([]models.Holding, len(snap.Holdings))
	copy(holdings, snap.Holdings)
	return models.Snapshot{Holdings: holdings, Cash: snap.Cash}
}
