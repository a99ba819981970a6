// seed puebla la base con datos de demostración: bodegas, productos y stock
// inicial con cantidades aleatorias entre 10 y 100.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Si se pasa un catálogo XML (export del sistema anterior, codificado en
// ISO-8859-1) los productos se toman de ahí; si no, se usa el catálogo de demo.
package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
)

type catalogo struct {
	Productos []producto `xml:"producto"`
}

type producto struct {
	Nombre string `xml:"nombre,attr"`
	Precio string `xml:"precio,attr"`
}

var demoWarehouses = []string{"Bodega Central", "Bodega Norte"}

var demoProducts = []producto{
	{Nombre: "Café molido 500g", Precio: "18500"},
	{Nombre: "Panela orgánica 1kg", Precio: "7200"},
	{Nombre: "Chocolate de mesa 250g", Precio: "9800"},
	{Nombre: "Arroz premium 5kg", Precio: "24500"},
	{Nombre: "Aceite de girasol 1L", Precio: "12900"},
}

func main() {
	products := demoProducts
	if len(os.Args) > 1 {
		loaded, err := loadCatalog(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
			os.Exit(1)
		}
		products = loaded
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)

	now := time.Now()
	var warehouses []*entity.Warehouse
	for _, name := range demoWarehouses {
		w := &entity.Warehouse{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := warehouseRepo.Create(w); err != nil {
			fmt.Fprintf(os.Stderr, "Crear bodega %q: %v\n", name, err)
			os.Exit(1)
		}
		warehouses = append(warehouses, w)
	}
	fmt.Printf("Bodegas creadas: %d\n", len(warehouses))

	rnd := rand.New(rand.NewSource(now.UnixNano()))
	created := 0
	for _, in := range products {
		price, err := decimal.NewFromString(strings.TrimSpace(in.Precio))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Precio inválido para %q: %v\n", in.Nombre, err)
			os.Exit(1)
		}
		p := &entity.Product{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(in.Nombre),
			Price:     price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := productRepo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %q: %v\n", p.Name, err)
			os.Exit(1)
		}
		for _, w := range warehouses {
			stock := &entity.Stock{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				WarehouseID: w.ID,
				Quantity:    int64(10 + rnd.Intn(91)), // 10..100
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := stockRepo.Upsert(stock); err != nil {
				fmt.Fprintf(os.Stderr, "Crear stock de %q en %q: %v\n", p.Name, w.Name, err)
				os.Exit(1)
			}
		}
		created++
	}
	fmt.Printf("Productos creados: %d (con stock en %d bodegas)\n", created, len(warehouses))
}

// loadCatalog decodifica el XML de catálogo; soporta la codificación ISO-8859-1
// de los exports del sistema anterior.
func loadCatalog(path string) ([]producto, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if len(c.Productos) == 0 {
		return nil, fmt.Errorf("el catálogo no contiene productos")
	}
	return c.Productos, nil
}
