package brackets

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// InvalidTemplateError rejects a placement template before any match is
// generated.
type InvalidTemplateError struct {
	Reason string
}

func (e *InvalidTemplateError) Error() string {
	return "invalid placement template: " + e.Reason
}

// BracketTemplate names one single-elimination sub-tournament and the
// final standing positions it is responsible for filling, e.g. 1-4 for a
// Championship bracket and 5-8 for a Plate.
type BracketTemplate struct {
	Name       string `json:"name" validate:"required"`
	Positions  []int  `json:"positions" validate:"required,min=1,dive,min=1"`
	ThirdPlace bool   `json:"third_place"`
}

type PlacementTemplate struct {
	Brackets []BracketTemplate `json:"brackets" validate:"required,min=1,dive"`
}

var validate = validator.New()

// ParseTemplate decodes a template definition from its JSON
// configuration form and runs structural validation.
func ParseTemplate(data []byte) (PlacementTemplate, error) {
	var t PlacementTemplate
	if err := sonic.Unmarshal(data, &t); err != nil {
		return PlacementTemplate{}, &InvalidTemplateError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if err := validate.Struct(t); err != nil {
		return PlacementTemplate{}, &InvalidTemplateError{Reason: err.Error()}
	}
	return t, nil
}

// Validate checks the template against the number of eligible teams.
// Semantic errors are input-validation failures reported before
// generation starts, never mid-generation.
func (t PlacementTemplate) Validate(eligibleTeams int) error {
	if err := validate.Struct(t); err != nil {
		return &InvalidTemplateError{Reason: err.Error()}
	}
	seen := make(map[int]string)
	total := 0
	for _, b := range t.Brackets {
		for _, p := range b.Positions {
			if owner, ok := seen[p]; ok {
				return &InvalidTemplateError{
					Reason: fmt.Sprintf("position %d targeted by both %q and %q", p, owner, b.Name),
				}
			}
			if p > eligibleTeams {
				return &InvalidTemplateError{
					Reason: fmt.Sprintf("bracket %q targets position %d but only %d teams are eligible", b.Name, p, eligibleTeams),
				}
			}
			seen[p] = b.Name
			total++
		}
	}
	if total > eligibleTeams {
		return &InvalidTemplateError{
			Reason: fmt.Sprintf("template targets %d positions but only %d teams are eligible", total, eligibleTeams),
		}
	}
	return nil
}

// PositionCount is the number of final standing positions the template
// fills across all brackets.
func (t PlacementTemplate) PositionCount() int {
	total := 0
	for _, b := range t.Brackets {
		total += len(b.Positions)
	}
	return total
}
