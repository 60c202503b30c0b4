package recipeweb

import "go.uber.org/zap"

const IntegrationName = "recipe_web"

type RecipeWebIntegration struct {
	allowedDomains []string
	logger         *zap.Logger
}

func NewRecipeWebIntegration(allowedDomains []string, logger *zap.Logger) *RecipeWebIntegration {
	return &RecipeWebIntegration{allowedDomains: allowedDomains, logger: logger}
}
