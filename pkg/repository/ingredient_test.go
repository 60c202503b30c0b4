package repository_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"droscher.com/CookBook/pkg/model"
)

type IngredientTestSuite struct {
	CatalogSuite
}

func TestIngredientTestSuite(t *testing.T) {
	suite.Run(t, new(IngredientTestSuite))
}

func names(ingredients []model.Ingredient) []string {
	result := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, ingredient.Name)
	}

	return result
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_DeduplicatesExactNames() {
	first, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Salt", "Salt", "Pepper"})
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"Salt", "Pepper"}, names(first))

	second, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Salt", "Salt", "Pepper"})
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"Salt", "Pepper"}, names(second))
	suite.ElementsMatch(first, second)

	all, err := suite.ingredients.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_IsCaseSensitive() {
	_, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: "salt"})
	suite.Require().NoError(err)

	result, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Salt", "Thyme"})
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"Salt", "Thyme"}, names(result))

	all, err := suite.ingredients.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_ReturnsExistingMatches() {
	existing, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: "Garlic"})
	suite.Require().NoError(err)

	result, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Garlic", "Onion"})
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Contains(result, *existing)
}

func (suite *IngredientTestSuite) TestBulkAddIngredients_EmptyInput() {
	result, err := suite.ingredients.BulkAddIngredients(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *IngredientTestSuite) TestGetDishes() {
	garlic, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: "Garlic"})
	suite.Require().NoError(err)

	dish, err := suite.dishes.Add(suite.ctx, model.Dish{Name: "Aioli"})
	suite.Require().NoError(err)

	_, err = suite.dishes.Add(suite.ctx, model.Dish{Name: "Toast"})
	suite.Require().NoError(err)

	_, err = suite.dishes.AddOrUpdateIngredient(suite.ctx, dish.ID, garlic.ID, 12)
	suite.Require().NoError(err)

	dishes, err := suite.ingredients.GetDishes(suite.ctx, garlic.ID)
	suite.Require().NoError(err)
	suite.Require().Len(dishes, 1)
	suite.Equal("Aioli", dishes[0].Name)
}

func (suite *IngredientTestSuite) TestUpdateAndDelete() {
	ingredient, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: "Corriander"})
	suite.Require().NoError(err)

	updated, err := suite.ingredients.Update(suite.ctx, ingredient.ID, map[string]any{"name": "Coriander"})
	suite.Require().NoError(err)
	suite.Equal("Coriander", updated.Name)

	suite.Require().NoError(suite.ingredients.Delete(suite.ctx, *updated))

	gone, err := suite.ingredients.FindOneOrNone(suite.ctx, ingredient.ID)
	suite.Require().NoError(err)
	suite.Nil(gone)
}

func (suite *IngredientTestSuite) TestSearchByName_FoldsCyrillicCase() {
	_, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Свёкла", "Борщевик", "Salt"})
	suite.Require().NoError(err)

	for _, query := range []string{"Свёкла", "свёкла", "СВЁКЛА", "ёкл"} {
		found, err := suite.ingredients.FindByName(suite.ctx, query)
		suite.Require().NoError(err)
		suite.Require().NotNil(found, query)
		suite.Equal("Свёкла", found.Name)
	}

	matches, err := suite.ingredients.SearchByName(suite.ctx, "БОРЩ")
	suite.Require().NoError(err)
	suite.Equal([]string{"Борщевик"}, names(matches))
}

func (suite *IngredientTestSuite) TestSearchByName_TreatsWildcardsLiterally() {
	_, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Salt", "Cocoa 100%", "sea_salt", "Pepper"})
	suite.Require().NoError(err)

	percent, err := suite.ingredients.SearchByName(suite.ctx, "%")
	suite.Require().NoError(err)
	suite.Equal([]string{"Cocoa 100%"}, names(percent))

	underscore, err := suite.ingredients.SearchByName(suite.ctx, "_")
	suite.Require().NoError(err)
	suite.Equal([]string{"sea_salt"}, names(underscore))

	none, err := suite.ingredients.SearchByName(suite.ctx, "s%t")
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *IngredientTestSuite) TestSearchByName_ReturnsLowestIDFirst() {
	_, err := suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Sea salt"})
	suite.Require().NoError(err)

	_, err = suite.ingredients.BulkAddIngredients(suite.ctx, []string{"Rock salt"})
	suite.Require().NoError(err)

	first, err := suite.ingredients.FindByName(suite.ctx, "SALT")
	suite.Require().NoError(err)
	suite.Require().NotNil(first)
	suite.Equal("Sea salt", first.Name)

	all, err := suite.ingredients.SearchByName(suite.ctx, "salt")
	suite.Require().NoError(err)
	suite.Equal([]string{"Sea salt", "Rock salt"}, names(all))
}
