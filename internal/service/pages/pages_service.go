package pages

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/domain/models"
)

// ErrUnknownForm is returned for an auth form name other than signin/signup.
var ErrUnknownForm = errors.New("unknown form")

// Landing is the marketing home page.
type Landing struct {
	Features     []models.Feature     `json:"features"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// Service serves the static pages. They hold no per-session state.
type Service struct {
	catalog *dataset.Catalog
}

func NewService(catalog *dataset.Catalog) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) Landing() Landing {
	return Landing{Features: s.catalog.Features(), Testimonials: s.catalog.Testimonials()}
}

// AuthForm describes the sign-in or sign-up form. The default is sign-in.
func (s *Service) AuthForm(name string) (models.Form, error) {
	if name == "" {
		name = "signin"
	}
	form, ok := s.catalog.Form(name)
	if !ok {
		return models.Form{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return form, nil
}
