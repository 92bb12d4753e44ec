package categories

import (
	"strings"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

func (s *Service) validate(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.Invalid("name", "category name is required")
	}
	return nil
}
