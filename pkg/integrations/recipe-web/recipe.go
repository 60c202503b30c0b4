package recipeweb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"droscher.com/CookBook/pkg/model"
)

var ErrRecipeNotFound = errors.New("no recipe found")

// RecipeJSON is the part of a schema.org Recipe that maps onto a dish.
type RecipeJSON struct {
	Type               json.RawMessage `json:"@type"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Image              json.RawMessage `json:"image"`
	RecipeIngredient   []string        `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage `json:"recipeInstructions"`
}

type RecipeMeta struct {
	Title       string `attr:"content" selector:"meta[property='og:title']"`
	Description string `attr:"content" selector:"meta[property='og:description']"`
	ImageURL    string `attr:"content" selector:"meta[property='og:image']"`
}

func (r *RecipeWebIntegration) FindRecipe(url string) (*model.Dish, []string, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(r.allowedDomains...),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs   error
		recipe *RecipeJSON
		meta   RecipeMeta
	)

	collector.OnHTML("script[type='application/ld+json']", func(element *colly.HTMLElement) {
		if recipe != nil {
			return
		}

		found, err := findRecipe([]byte(element.Text))
		if err != nil {
			r.logger.Warn("failed to parse JSON-LD block", zap.String("url", url), zap.Error(err))

			return
		}

		recipe = found
	})

	collector.OnHTML("head", func(element *colly.HTMLElement) {
		if err := element.Unmarshal(&meta); err != nil {
			r.logger.Warn("failed to read page metadata", zap.String("url", url), zap.Error(err))
		}
	})

	collector.OnError(func(response *colly.Response, err error) {
		r.logger.Error("error while scraping recipe", zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	r.logger.Info("scraping recipe", zap.String("url", url))

	if multierr.AppendInto(&errs, collector.Visit(url)) {
		return nil, nil, errs
	}

	if recipe == nil {
		return nil, nil, fmt.Errorf("%w at %s", ErrRecipeNotFound, url)
	}

	dish := model.Dish{
		Name:        firstNonEmpty(recipe.Name, meta.Title),
		Description: firstNonEmpty(recipe.Description, meta.Description),
		Recipe:      instructionsText(recipe.RecipeInstructions),
	}

	if image := firstNonEmpty(imageURL(recipe.Image), meta.ImageURL); image != "" {
		dish.ImageURL = pointy.String(image)
	}

	ingredients := make([]string, 0, len(recipe.RecipeIngredient))

	for _, ingredient := range recipe.RecipeIngredient {
		if name := strings.Join(strings.Fields(ingredient), " "); name != "" {
			ingredients = append(ingredients, name)
		}
	}

	r.logger.Info("finished scraping recipe", zap.String("name", dish.Name), zap.Int("ingredients", len(ingredients)))

	return &dish, ingredients, nil
}

// findRecipe looks for a Recipe node in a JSON-LD document, which may be a single object, an
// array of objects or an object with an @graph.
func findRecipe(data []byte) (*RecipeJSON, error) {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	node := findRecipeNode(document)
	if node == nil {
		return nil, ErrRecipeNotFound
	}

	encoded, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}

	var recipe RecipeJSON
	if err := json.Unmarshal(encoded, &recipe); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func findRecipeNode(node any) map[string]any {
	switch value := node.(type) {
	case []any:
		for _, item := range value {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]any:
		if isRecipeType(value["@type"]) {
			return value
		}

		if graph, ok := value["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}

	return nil
}

func isRecipeType(value any) bool {
	switch typed := value.(type) {
	case string:
		return typed == "Recipe"
	case []any:
		for _, item := range typed {
			if name, ok := item.(string); ok && name == "Recipe" {
				return true
			}
		}
	}

	return false
}

func imageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var image any
	if err := json.Unmarshal(raw, &image); err != nil {
		return ""
	}

	switch value := image.(type) {
	case string:
		return value
	case []any:
		for _, item := range value {
			if url := imageURL(mustMarshal(item)); url != "" {
				return url
			}
		}
	case map[string]any:
		if url, ok := value["url"].(string); ok {
			return url
		}

		if url, ok := value["contentUrl"].(string); ok {
			return url
		}
	}

	return ""
}

func instructionsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var instructions any
	if err := json.Unmarshal(raw, &instructions); err != nil {
		return ""
	}

	steps := collectSteps(instructions, nil)

	return strings.Join(steps, "\n")
}

func collectSteps(node any, steps []string) []string {
	switch value := node.(type) {
	case string:
		if text := strings.TrimSpace(value); text != "" {
			steps = append(steps, text)
		}
	case []any:
		for _, item := range value {
			steps = collectSteps(item, steps)
		}
	case map[string]any:
		if items, ok := value["itemListElement"]; ok {
			return collectSteps(items, steps)
		}

		if text, ok := value["text"].(string); ok {
			return collectSteps(text, steps)
		}
	}

	return steps
}

func mustMarshal(value any) json.RawMessage {
	encoded, _ := json.Marshal(value)

	return encoded
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
