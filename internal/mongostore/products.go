package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"api_backoffice/internal/apperr"
	"api_backoffice/internal/catalog"
)

// ProductStorage implements catalog.Storage over the products collection.
type ProductStorage struct {
	products *mongo.Collection
}

var _ catalog.Storage = (*ProductStorage)(nil)

func NewProductStorage(db *mongo.Database) *ProductStorage {
	return &ProductStorage{products: db.Collection(productsCollection)}
}

func (s *ProductStorage) Insert(ctx context.Context, product *catalog.Product) error {
	_, err := s.products.InsertOne(ctx, toProductDocument(product))
	return err
}

func (s *ProductStorage) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var doc productDocument
	if err := s.products.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return doc.toProduct(), nil
}

func (s *ProductStorage) List(ctx context.Context) ([]*catalog.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{}, findOptions("createdAt", 1, 0))
	if err != nil {
		return nil, err
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*catalog.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toProduct())
	}
	return out, nil
}

func (s *ProductStorage) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	var doc productDocument
	err := s.products.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": productPatchSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return doc.toProduct(), nil
}

func (s *ProductStorage) Delete(ctx context.Context, id string) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

func (s *ProductStorage) AdjustStock(ctx context.Context, id string, delta int) error {
	res, err := s.products.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"stock_quantity": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("product")
	}
	return nil
}

// productPatchSet turns the set fields of a patch into a $set document.
func productPatchSet(p catalog.ProductPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Price != nil {
		set["price"] = p.Price.InexactFloat64()
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.IsNew != nil {
		set["isNew"] = *p.IsNew
	}
	if p.StockQuantity != nil {
		set["stock_quantity"] = *p.StockQuantity
	}
	if p.CostPrice != nil {
		set["cost_price"] = p.CostPrice.InexactFloat64()
	}
	return set
}
