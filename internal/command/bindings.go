package command

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"kiosco/internal/model"
	"kiosco/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

type searchRequest struct {
	Query string `json:"query"`
}

type productRequest struct {
	Product model.Product `json:"product"`
}

type invoiceRequest struct {
	Invoice model.Invoice `json:"invoice"`
}

type receiptRequest struct {
	InvoiceID int64 `json:"invoice_id" validate:"required"`
}

// bind decodes the payload and runs validator tags over the result.
func bind(payload json.RawMessage, req any) error {
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, req); err != nil {
			return &BindError{msg: "JSON invalido: " + err.Error()}
		}
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}

// BindAll registers every operation of the data layer under the name the UI
// invokes it by.
func BindAll(reg *Registry, products service.ProductService, invoices service.InvoiceService, receipts service.ReceiptService) {
	reg.Register("search_products", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req searchRequest
		if err := bind(payload, &req); err != nil {
			return nil, err
		}
		return products.Search(ctx, req.Query)
	})

	reg.Register("list_products", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return products.List(ctx)
	})

	reg.Register("create_product", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req productRequest
		if err := bind(payload, &req); err != nil {
			return nil, err
		}
		if err := products.Create(ctx, req.Product); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	})

	reg.Register("save_product", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req productRequest
		if err := bind(payload, &req); err != nil {
			return nil, err
		}
		if err := products.Save(ctx, req.Product); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	})

	reg.Register("list_invoices", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return invoices.List(ctx)
	})

	reg.Register("list_invoice_lines", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return invoices.ListLines(ctx)
	})

	reg.Register("create_invoice", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req invoiceRequest
		if err := bind(payload, &req); err != nil {
			return nil, err
		}
		return invoices.Create(ctx, req.Invoice)
	})

	reg.Register("render_receipt", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req receiptRequest
		if err := bind(payload, &req); err != nil {
			return nil, err
		}
		path, err := receipts.Render(ctx, req.InvoiceID)
		if err != nil {
			return nil, err
		}
		return map[string]string{"path": path}, nil
	})
}
