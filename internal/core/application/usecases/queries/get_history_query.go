package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery retrieves the audit trail of one order, oldest entries
// first. A non-positive limit returns the complete history.
//
// Example:
//
//	query, err := queries.NewGetHistoryQuery(orderID, 50)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
type GetHistoryQuery struct {
	orderID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetHistoryQuery creates a query for an order's audit history.
func NewGetHistoryQuery(orderID kernel.UUID, limit int) (GetHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetHistoryQuery{}, err
	}
	return GetHistoryQuery{
		orderID: orderID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Limit returns the maximum number of entries to return, counted from the
// start of the history. Non-positive means no limit.
func (q GetHistoryQuery) Limit() int {
	return q.limit
}

// GetHistoryQueryResponse is the read model of one audit entry.
type GetHistoryQueryResponse struct {
	ID           kernel.UUID
	Seq          int64
	Action       string
	OperatorID   kernel.UUID
	OperatorName string
	RecordedAt   time.Time
}
