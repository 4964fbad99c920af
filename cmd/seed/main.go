// cmd/seed/main.go — Importa productos desde un CSV al catálogo.
// Uso: go run ./cmd/seed productos.csv
//
// Columnas esperadas: name,description,barcode,price,cost,stock
// Los precios llegan en moneda decimal y se guardan en centavos.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"kiosco/internal/config"
	"kiosco/internal/mapper"
	"kiosco/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("uso: seed <productos.csv>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("open csv error: %v", err)
	}
	defer f.Close()

	h, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer h.Close()

	ctx := context.Background()
	if err := storage.Migrate(ctx, h); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6

	// Skip header
	if _, err := r.Read(); err != nil {
		log.Fatalf("read header error: %v", err)
	}

	inserted := 0
	err = h.Do(ctx, func(db *sqlx.DB) error {
		for {
			record, err := r.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			price, err := decimal.NewFromString(record[3])
			if err != nil {
				return fmt.Errorf("fila %d: precio inválido %q", inserted+2, record[3])
			}
			cost, err := decimal.NewFromString(record[4])
			if err != nil {
				return fmt.Errorf("fila %d: costo inválido %q", inserted+2, record[4])
			}
			stock, err := strconv.ParseInt(record[5], 10, 64)
			if err != nil {
				return fmt.Errorf("fila %d: stock inválido %q", inserted+2, record[5])
			}

			var description *string
			if record[1] != "" {
				description = &record[1]
			}

			if _, err := db.ExecContext(ctx,
				`INSERT INTO products (name, description, barcode, price_cents, cost_cents, stock)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				record[0], description, record[2],
				mapper.ToCents(price), mapper.ToCents(cost), stock); err != nil {
				return err
			}
			inserted++
		}
	})
	if err != nil {
		log.Fatalf("import error: %v", err)
	}

	fmt.Printf("✅ %d productos importados\n", inserted)
}
