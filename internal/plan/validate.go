package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// Validate runs the checks the schema cannot express and returns every
// problem found.
func Validate(p *Plan) []error {
	var errs []error

	if strings.TrimSpace(p.Construction.Name) == "" {
		errs = append(errs, fmt.Errorf("construction.name is required"))
	}
	for i, ph := range p.Phases {
		prefix := fmt.Sprintf("phases[%d]", i)
		if strings.TrimSpace(ph.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		for j, st := range ph.Stages {
			stPrefix := fmt.Sprintf("%s.stages[%d]", prefix, j)
			if strings.TrimSpace(st.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", stPrefix))
			}
			for k, t := range st.Tasks {
				tPrefix := fmt.Sprintf("%s.tasks[%d]", stPrefix, k)
				if strings.TrimSpace(t.Name) == "" {
					errs = append(errs, fmt.Errorf("%s.name is required", tPrefix))
				}
				if t.BudgetedCost != nil {
					if err := domain.ValidateCost(*t.BudgetedCost); err != nil {
						errs = append(errs, fmt.Errorf("%s.budgeted_cost: %w", tPrefix, err))
					}
				}
			}
		}
	}
	return errs
}

func joinInvalid(errs []error) error {
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
}
