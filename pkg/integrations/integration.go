package integrations

import (
	"go.uber.org/zap"

	"droscher.com/CookBook/pkg/integrations/recipe-web"
	"droscher.com/CookBook/pkg/model"
)

// Integration imports dishes from an external source.
type Integration interface {
	// FindRecipe returns the dish described at url and the names of its ingredients.
	FindRecipe(url string) (*model.Dish, []string, error)
}

func GetIntegration(name string, allowedDomains []string, logger *zap.Logger) Integration {
	if name == recipeweb.IntegrationName {
		return recipeweb.NewRecipeWebIntegration(allowedDomains, logger)
	}

	return nil
}
