package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"kiosco/internal/model"
	"kiosco/internal/repository"
)

// Los mensajes de error visibles para el usuario están en castellano; el
// detalle técnico queda solo en el log.
var (
	errProductFetch  = errors.New("Ocurrió un error al intentar obtener los productos.")
	errProductCreate = errors.New("Ocurrió un error al intentar crear un nuevo producto.")
)

// ProductService defines the product use cases exposed over the command
// boundary.
type ProductService interface {
	Search(ctx context.Context, query string) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) error
	Save(ctx context.Context, p model.Product) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, errProductFetch
	}
	log.Info().Int("count", len(products)).Msg("products found")
	return products, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	log.Info().Msg("fetching products")
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return nil, errProductFetch
	}
	log.Info().Int("count", len(products)).Msg("products found")
	return products, nil
}

func (s *productService) Create(ctx context.Context, p model.Product) error {
	log.Info().Msg("creating new product")
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error().Err(err).Str("name", p.Name).Str("barcode", p.Barcode).
			Msg("failed to create product")
		return errProductCreate
	}
	log.Info().Str("name", p.Name).Msg("product created successfully")
	return nil
}

// Save overwrites the product row keyed by its id. Saving an id that no
// longer exists affects zero rows and still succeeds.
func (s *productService) Save(ctx context.Context, p model.Product) error {
	log.Info().Str("name", p.Name).Msg("saving product")
	if err := s.repo.Update(ctx, p); err != nil {
		log.Error().Err(err).Int64("id", p.ID).Str("name", p.Name).
			Msg("failed to save product")
		return errors.New("Ocurrió un error en el guardado del producto \"" + p.Name + "\"")
	}
	log.Info().Str("name", p.Name).Msg("product saved correctly")
	return nil
}
