package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"api_backoffice/internal/sales"
)

const defaultLimit = sales.DefaultLimit

func bsonSort(key string, order int) bson.D {
	return bson.D{{Key: key, Value: order}}
}

// rangeFilter builds {$gte: from, $lt: to}, skipping zero bounds. It returns nil
// when both bounds are zero.
func rangeFilter(from, to time.Time) bson.M {
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lt"] = to
	}
	if len(r) == 0 {
		return nil
	}
	return r
}

func saleQuery(f sales.SaleFilter) bson.M {
	q := bson.M{}
	if r := rangeFilter(f.From, f.To); r != nil {
		q["date"] = r
	}
	if f.Status != 0 {
		q["status"] = f.Status.String()
	}
	return q
}

func installmentQuery(f sales.InstallmentFilter) bson.M {
	q := bson.M{}
	if f.SaleID != "" {
		q["sale_id"] = f.SaleID
	}
	if f.Paid != nil {
		q["paid"] = *f.Paid
	}
	if r := rangeFilter(f.DueFrom, f.DueTo); r != nil {
		q["due_date"] = r
	}
	return q
}

func cashFlowQuery(f sales.CashFlowFilter) bson.M {
	q := bson.M{}
	if r := rangeFilter(f.From, f.To); r != nil {
		q["date"] = r
	}
	if f.Type != 0 {
		q["type"] = f.Type.String()
	}
	return q
}
