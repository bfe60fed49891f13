package address

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

type addressRepo interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Get(ctx context.Context, userID, id string) (*domain.Address, error)
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
	Update(ctx context.Context, a domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, userID, id string) error
}

type Service struct {
	repo addressRepo
}

func New(repo addressRepo) *Service {
	return &Service{repo: repo}
}

// Input carries address fields from a request. Nil fields are left unchanged
// on update.
type Input struct {
	FullName    *string `json:"fullName"`
	PhoneNumber *string `json:"phoneNumber"`
	Building    *string `json:"building"`
	Colony      *string `json:"colony"`
	Province    *string `json:"province"`
	City        *string `json:"city"`
	Area        *string `json:"area"`
	Address     *string `json:"address"`
	Label       *string `json:"label"`
	IsDefault   *bool   `json:"isDefault"`
}

func (in Input) apply(a *domain.Address) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.FullName, in.FullName)
	set(&a.PhoneNumber, in.PhoneNumber)
	set(&a.Building, in.Building)
	set(&a.Colony, in.Colony)
	set(&a.Province, in.Province)
	set(&a.City, in.City)
	set(&a.Area, in.Area)
	set(&a.Address, in.Address)
	if in.Label != nil {
		a.Label = domain.AddressLabel(*in.Label)
	}
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Address, error) {
	a, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// Create stores a new address. Saving it as default clears the flag on the
// user's other addresses.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*domain.Address, error) {
	a := domain.Address{UserID: userID}
	in.apply(&a)
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, a)
}

// Update merges in over the stored address and revalidates the result.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*domain.Address, error) {
	a, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound(err)
	}
	in.apply(a)
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out, err := s.repo.Update(ctx, *a)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return notFound(s.repo.Delete(ctx, userID, id))
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Address")
	}
	return err
}
