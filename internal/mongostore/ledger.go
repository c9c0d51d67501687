package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"api_backoffice/internal/apperr"
	"api_backoffice/internal/sales"
)

// LedgerStorage implements sales.Storage over the sales, installments and
// cash_flow collections. Each write touches a single document except
// InsertInstallments, which is one unordered InsertMany.
type LedgerStorage struct {
	sales        *mongo.Collection
	installments *mongo.Collection
	cashFlow     *mongo.Collection
}

var _ sales.Storage = (*LedgerStorage)(nil)

func NewLedgerStorage(db *mongo.Database) *LedgerStorage {
	return &LedgerStorage{
		sales:        db.Collection(salesCollection),
		installments: db.Collection(installmentsCollection),
		cashFlow:     db.Collection(cashFlowCollection),
	}
}

func (s *LedgerStorage) InsertSale(ctx context.Context, sale *sales.Sale) error {
	_, err := s.sales.InsertOne(ctx, toSaleDocument(sale))
	return err
}

func (s *LedgerStorage) GetSale(ctx context.Context, id string) (*sales.Sale, error) {
	var doc saleDocument
	if err := s.sales.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("sale")
		}
		return nil, err
	}
	return doc.toSale()
}

func (s *LedgerStorage) FindSales(ctx context.Context, filter sales.SaleFilter) ([]*sales.Sale, error) {
	cur, err := s.sales.Find(ctx, saleQuery(filter), findOptions("date", -1, filter.Limit))
	if err != nil {
		return nil, err
	}
	var docs []saleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*sales.Sale, 0, len(docs))
	for _, d := range docs {
		sale, err := d.toSale()
		if err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, nil
}

func (s *LedgerStorage) SetSaleStatus(ctx context.Context, id string, status sales.SaleStatus) error {
	res, err := s.sales.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status.String()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("sale")
	}
	return nil
}

func (s *LedgerStorage) InsertInstallments(ctx context.Context, installments []*sales.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(installments))
	for _, inst := range installments {
		docs = append(docs, toInstallmentDocument(inst))
	}
	_, err := s.installments.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

func (s *LedgerStorage) FindInstallments(ctx context.Context, filter sales.InstallmentFilter) ([]*sales.Installment, error) {
	opts := findOptions("due_date", 1, filter.Limit)
	opts.SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "number", Value: 1}})

	cur, err := s.installments.Find(ctx, installmentQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	var docs []installmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*sales.Installment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toInstallment())
	}
	return out, nil
}

func (s *LedgerStorage) MarkInstallmentPaid(ctx context.Context, id string, paidDate time.Time) (*sales.Installment, error) {
	var doc installmentDocument
	err := s.installments.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"paid": true, "paid_date": paidDate}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("installment")
		}
		return nil, err
	}
	return doc.toInstallment(), nil
}

func (s *LedgerStorage) InsertCashFlowEntry(ctx context.Context, entry *sales.CashFlowEntry) error {
	_, err := s.cashFlow.InsertOne(ctx, toCashFlowDocument(entry))
	return err
}

func (s *LedgerStorage) FindCashFlow(ctx context.Context, filter sales.CashFlowFilter) ([]*sales.CashFlowEntry, error) {
	cur, err := s.cashFlow.Find(ctx, cashFlowQuery(filter), findOptions("date", -1, filter.Limit))
	if err != nil {
		return nil, err
	}
	var docs []cashFlowDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*sales.CashFlowEntry, 0, len(docs))
	for _, d := range docs {
		entry, err := d.toEntry()
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *LedgerStorage) DeleteCashFlowEntry(ctx context.Context, id string) error {
	res, err := s.cashFlow.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("cash flow entry")
	}
	return nil
}
