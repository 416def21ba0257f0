package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// templateAlias names the template construction on the command line.
const templateAlias = "template"

// resolveConstructionID resolves a construction identifier which can be:
//   - the word "template"
//   - a full UUID (passed through directly)
//   - a unique UUID prefix, as shown by "construction list"
func resolveConstructionID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.Invalidf("construction ID is required")
	}
	if strings.EqualFold(input, templateAlias) {
		return app.Templates.TemplateID(), nil
	}
	if domain.ValidateID("construction", input) == nil {
		return input, nil
	}

	constructions, err := app.Constructions.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, c := range constructions {
		if strings.HasPrefix(c.ID, strings.ToLower(input)) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", domain.NotFoundError("construction", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("construction ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
