package file

import (
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// The snapshot format is a plain JSON array of product objects, streamed
// through jx so a full-collection rewrite allocates one buffer regardless of
// collection size.

func encodeProducts(products []catalog.Product) []byte {
	var e jx.Encoder
	e.ArrStart()
	for i := range products {
		encodeProduct(&e, &products[i])
	}
	e.ArrEnd()
	return e.Bytes()
}

func encodeProduct(e *jx.Encoder, p *catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("title")
	e.Str(p.Title)
	if p.Description != "" {
		e.FieldStart("description")
		e.Str(p.Description)
	}
	e.FieldStart("price")
	e.Num(jx.Num(p.Price.String()))
	e.FieldStart("images")
	encodeStrings(e, p.Images)
	if p.Seller != nil {
		e.FieldStart("seller")
		encodeSeller(e, p.Seller)
	}
	e.FieldStart("availableStock")
	e.Int(p.AvailableStock)
	e.FieldStart("paymentMethods")
	encodeStrings(e, p.PaymentMethods)
	if p.Rating != nil {
		e.FieldStart("rating")
		encodeRating(e, p.Rating)
	}
	if p.Category != nil {
		e.FieldStart("category")
		encodeCategory(e, p.Category)
	}
	if len(p.Attributes) > 0 {
		e.FieldStart("attributes")
		e.ObjStart()
		for _, k := range sortedKeys(p.Attributes) {
			e.FieldStart(k)
			e.Str(p.Attributes[k])
		}
		e.ObjEnd()
	}
	e.ObjEnd()
}

func encodeSeller(e *jx.Encoder, s *catalog.Seller) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(s.ID)
	e.FieldStart("name")
	e.Str(s.Name)
	e.FieldStart("storeName")
	e.Str(s.StoreName)
	e.FieldStart("isOfficialStore")
	e.Bool(s.OfficialStore)
	e.FieldStart("rating")
	e.Float64(s.Rating)
	e.ObjEnd()
}

func encodeRating(e *jx.Encoder, r *catalog.ProductRating) {
	e.ObjStart()
	e.FieldStart("averageRating")
	e.Float64(r.AverageRating)
	e.FieldStart("totalRatings")
	e.Int(r.TotalRatings)
	e.FieldStart("reviews")
	e.ArrStart()
	for i := range r.Reviews {
		rv := &r.Reviews[i]
		e.ObjStart()
		e.FieldStart("userId")
		e.Str(rv.UserID)
		e.FieldStart("comment")
		e.Str(rv.Comment)
		e.FieldStart("rating")
		e.Int(rv.Rating)
		e.FieldStart("date")
		e.Str(rv.Date)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeCategory(e *jx.Encoder, c *catalog.Category) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(c.ID)
	e.FieldStart("name")
	e.Str(c.Name)
	if c.Description != "" {
		e.FieldStart("description")
		e.Str(c.Description)
	}
	if c.ParentID != "" {
		e.FieldStart("parentId")
		e.Str(c.ParentID)
	}
	if len(c.Attributes) > 0 {
		e.FieldStart("attributes")
		encodeStrings(e, c.Attributes)
	}
	e.FieldStart("active")
	e.Bool(c.Active)
	e.ObjEnd()
}

func encodeStrings(e *jx.Encoder, values []string) {
	e.ArrStart()
	for _, v := range values {
		e.Str(v)
	}
	e.ArrEnd()
}

func decodeProducts(data []byte) ([]catalog.Product, error) {
	d := jx.DecodeBytes(data)

	var products []catalog.Product
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// DecodeProduct reads a single product object. Unknown fields are skipped so
// snapshots stay forward-compatible.
func DecodeProduct(d *jx.Decoder) (catalog.Product, error) {
	return decodeProduct(d)
}

func decodeProduct(d *jx.Decoder) (catalog.Product, error) {
	var p catalog.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "title":
			p.Title, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "price":
			p.Price, err = decodeDecimal(d)
		case "images":
			p.Images, err = decodeStrings(d)
		case "seller":
			p.Seller, err = decodeSeller(d)
		case "availableStock":
			p.AvailableStock, err = d.Int()
		case "paymentMethods":
			p.PaymentMethods, err = decodeStrings(d)
		case "rating":
			p.Rating, err = decodeRating(d)
		case "category":
			p.Category, err = decodeCategory(d)
		case "attributes":
			p.Attributes = map[string]string{}
			err = d.Obj(func(d *jx.Decoder, k string) error {
				v, err := d.Str()
				if err != nil {
					return err
				}
				p.Attributes[k] = v
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

func decodeSeller(d *jx.Decoder) (*catalog.Seller, error) {
	var s catalog.Seller
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			s.ID, err = d.Str()
		case "name":
			s.Name, err = d.Str()
		case "storeName":
			s.StoreName, err = d.Str()
		case "isOfficialStore":
			s.OfficialStore, err = d.Bool()
		case "rating":
			s.Rating, err = d.Float64()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeRating(d *jx.Decoder) (*catalog.ProductRating, error) {
	r := catalog.ProductRating{Reviews: []catalog.Review{}}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "averageRating":
			r.AverageRating, err = d.Float64()
		case "totalRatings":
			r.TotalRatings, err = d.Int()
		case "reviews":
			err = d.Arr(func(d *jx.Decoder) error {
				rv, err := decodeReview(d)
				if err != nil {
					return err
				}
				r.Reviews = append(r.Reviews, rv)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeReview(d *jx.Decoder) (catalog.Review, error) {
	var rv catalog.Review
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "userId":
			rv.UserID, err = d.Str()
		case "comment":
			rv.Comment, err = d.Str()
		case "rating":
			rv.Rating, err = d.Int()
		case "date":
			rv.Date, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return rv, err
}

func decodeCategory(d *jx.Decoder) (*catalog.Category, error) {
	var c catalog.Category
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			c.ID, err = d.Str()
		case "name":
			c.Name, err = d.Str()
		case "description":
			c.Description, err = d.Str()
		case "parentId":
			c.ParentID, err = d.Str()
		case "attributes":
			c.Attributes, err = decodeStrings(d)
		case "active":
			c.Active, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeStrings(d *jx.Decoder) ([]string, error) {
	out := []string{}
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeDecimal accepts both number and quoted-string encodings so snapshots
// written before MarshalJSONWithoutQuotes still load.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(strings.Trim(n.String(), `"`))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
