package views_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"droscher.com/CookBook/pkg/integrations"
	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
	"droscher.com/CookBook/pkg/repository/repositorytest"
	"droscher.com/CookBook/pkg/ui/views"
	"droscher.com/CookBook/pkg/viewmodel"
)

type ViewsSuite struct {
	suite.Suite
	cooks       *repository.Cooks
	dishes      *repository.Dishes
	ingredients *repository.Ingredients
	integration integrations.Integration
	ctx         context.Context
}

func (suite *ViewsSuite) SetupTest() {
	repo := repositorytest.Open(suite.T())
	suite.cooks = repository.NewCooks(repo)
	suite.dishes = repository.NewDishes(repo)
	suite.ingredients = repository.NewIngredients(repo)
	suite.ctx = context.Background()
}

func (suite *ViewsSuite) addCook(name string) model.Cook {
	cook, err := suite.cooks.Add(suite.ctx, model.Cook{Name: name})
	suite.Require().NoError(err)

	return *cook
}

func (suite *ViewsSuite) addDish(name string, cookID *uint) model.Dish {
	dish, err := suite.dishes.Add(suite.ctx, model.Dish{Name: name, CookID: cookID})
	suite.Require().NoError(err)

	return *dish
}

func (suite *ViewsSuite) addIngredient(name string) model.Ingredient {
	ingredient, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: name})
	suite.Require().NoError(err)

	return *ingredient
}

func (suite *ViewsSuite) dishListView() *views.DishListView {
	return views.NewDishListView(viewmodel.NewDishListViewModel(suite.dishes, suite.ingredients, suite.integration, zaptest.NewLogger(suite.T())))
}

func get(target string, params ...httprouter.Param) *http.Request {
	return withParams(httptest.NewRequest(http.MethodGet, target, nil), params)
}

func post(target string, form url.Values, params ...httprouter.Param) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return withParams(r, params)
}

func withParams(r *http.Request, params httprouter.Params) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, params))
}

func param(key, value string) httprouter.Param {
	return httprouter.Param{Key: key, Value: value}
}

func (suite *ViewsSuite) content(page *views.Page, err error) string {
	suite.Require().NoError(err)
	suite.Require().NotNil(page)
	suite.Require().Empty(page.Redirect)

	return string(page.Content)
}

func (suite *ViewsSuite) redirected(page *views.Page, err error) string {
	suite.Require().NoError(err)
	suite.Require().NotNil(page)
	suite.Require().NotEmpty(page.Redirect)

	return page.Redirect
}
