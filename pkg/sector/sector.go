package sector

import (
	"fmt"

	"github.com/opd-ai/go-voyage/pkg/entity"
	"github.com/opd-ai/go-voyage/pkg/physics"
)

// Sector is an ordered collection of bodies plus the extent used to place them.
// The extent only bounds generation; bodies are free to drift outside it.
type Sector struct {
	sizeLimit float64
	bodies    []*entity.Body
}

// New creates an empty sector whose axes span [0, sizeLimit].
func New(sizeLimit float64) (*Sector, error) {
	if !finite(sizeLimit) || sizeLimit <= 0 {
		return nil, fmt.Errorf("sector size limit %v: %w", sizeLimit, physics.ErrInvalidArgument)
	}
	return &Sector{sizeLimit: sizeLimit}, nil
}

// Populate generates count bodies of class and appends them to the sector.
// On error the sector is left unchanged.
func (s *Sector) Populate(src physics.Source, count int, class BodyClass, opts ...GenerateOption) error {
	bodies, err := Generate(src, count, class, s.sizeLimit, opts...)
	if err != nil {
		return fmt.Errorf("populate sector: %w", err)
	}
	s.bodies = append(s.bodies, bodies...)
	return nil
}

// SizeLimit returns the per-axis generation bound
func (s *Sector) SizeLimit() float64 {
	return s.sizeLimit
}

// Bodies returns the sector's bodies in generation order.
func (s *Sector) Bodies() []*entity.Body {
	return s.bodies
}

// Len returns the number of bodies
func (s *Sector) Len() int {
	return len(s.bodies)
}
