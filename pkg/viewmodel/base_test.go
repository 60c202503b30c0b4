package viewmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
	"droscher.com/CookBook/pkg/repository/repositorytest"
	"droscher.com/CookBook/pkg/viewmodel"
)

type ViewModelSuite struct {
	suite.Suite
	cooks       *repository.Cooks
	dishes      *repository.Dishes
	ingredients *repository.Ingredients
	ctx         context.Context
}

func (suite *ViewModelSuite) SetupTest() {
	repo := repositorytest.Open(suite.T())
	suite.cooks = repository.NewCooks(repo)
	suite.dishes = repository.NewDishes(repo)
	suite.ingredients = repository.NewIngredients(repo)
	suite.ctx = context.Background()
}

func (suite *ViewModelSuite) addCook(name string) model.Cook {
	cook, err := suite.cooks.Add(suite.ctx, model.Cook{Name: name, Bio: name + " cooks"})
	suite.Require().NoError(err)

	return *cook
}

func (suite *ViewModelSuite) addDish(name string, cookID *uint) model.Dish {
	dish, err := suite.dishes.Add(suite.ctx, model.Dish{Name: name, CookID: cookID})
	suite.Require().NoError(err)

	return *dish
}

func (suite *ViewModelSuite) addIngredient(name string) model.Ingredient {
	ingredient, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: name})
	suite.Require().NoError(err)

	return *ingredient
}

type BaseTestSuite struct {
	ViewModelSuite
	viewModel *viewmodel.CookViewModel
}

func (suite *BaseTestSuite) SetupTest() {
	suite.ViewModelSuite.SetupTest()
	suite.viewModel = viewmodel.NewCookViewModel(suite.cooks)
}

func TestBaseTestSuite(t *testing.T) {
	suite.Run(t, new(BaseTestSuite))
}

func (suite *BaseTestSuite) TestAddRejectsEmptyEntities() {
	_, err := suite.viewModel.Add(suite.ctx, nil)
	suite.Require().ErrorIs(err, viewmodel.ErrEmptyEntity)

	_, err = suite.viewModel.Add(suite.ctx, &model.Cook{Bio: "no name"})
	suite.Require().ErrorIs(err, viewmodel.ErrEmptyEntity)

	all, err := suite.cooks.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *BaseTestSuite) TestAddAssignsIdentity() {
	cook, err := suite.viewModel.Add(suite.ctx, &model.Cook{Name: "Julia"})
	suite.Require().NoError(err)
	suite.NotZero(cook.ID)
	suite.False(suite.viewModel.Loaded())
}

func (suite *BaseTestSuite) TestNothingLoaded() {
	_, ok := suite.viewModel.Current()
	suite.False(ok)

	suite.Require().ErrorIs(suite.viewModel.Delete(suite.ctx), viewmodel.ErrNotLoaded)
	suite.Require().ErrorIs(suite.viewModel.Update(suite.ctx), viewmodel.ErrNotLoaded)
	suite.Require().ErrorIs(suite.viewModel.Modify(func(*model.Cook) {}), viewmodel.ErrNotLoaded)

	_, err := suite.viewModel.LoadRelatedData(suite.ctx)
	suite.Require().ErrorIs(err, viewmodel.ErrNotLoaded)

	_, err = suite.viewModel.Detail(suite.ctx)
	suite.Require().ErrorIs(err, viewmodel.ErrNotLoaded)
}

func (suite *BaseTestSuite) TestLoadMissingClearsCurrent() {
	cook := suite.addCook("Julia")

	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID))
	suite.True(suite.viewModel.Loaded())

	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID+100))
	suite.False(suite.viewModel.Loaded())
}

func (suite *BaseTestSuite) TestModifyAndUpdate() {
	cook := suite.addCook("Julia")
	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID))

	suite.Require().NoError(suite.viewModel.Modify(func(cook *model.Cook) {
		cook.Name = "Julia Child"
		cook.Bio = ""
	}))
	suite.Require().NoError(suite.viewModel.Update(suite.ctx))

	stored, err := suite.cooks.FindOneOrNone(suite.ctx, cook.ID)
	suite.Require().NoError(err)
	suite.Equal("Julia Child", stored.Name)
	suite.Empty(stored.Bio)

	current, ok := suite.viewModel.Current()
	suite.True(ok)
	suite.Equal(*stored, current)
}

func (suite *BaseTestSuite) TestUpdateAfterExternalDelete() {
	cook := suite.addCook("Julia")
	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID))
	suite.Require().NoError(suite.cooks.DeleteByID(suite.ctx, cook.ID))

	suite.Require().ErrorIs(suite.viewModel.Update(suite.ctx), repository.ErrNotFound)
	suite.Require().ErrorIs(suite.viewModel.Delete(suite.ctx), repository.ErrNotFound)
}

func (suite *BaseTestSuite) TestDeleteClearsCurrent() {
	cook := suite.addCook("Julia")
	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID))

	suite.Require().NoError(suite.viewModel.Delete(suite.ctx))
	suite.False(suite.viewModel.Loaded())

	stored, err := suite.cooks.FindOneOrNone(suite.ctx, cook.ID)
	suite.Require().NoError(err)
	suite.Nil(stored)
}

func (suite *BaseTestSuite) TestLoadDropsRelatedData() {
	julia := suite.addCook("Julia")
	jacques := suite.addCook("Jacques")
	suite.addDish("Omelette", &jacques.ID)

	suite.Require().NoError(suite.viewModel.Load(suite.ctx, julia.ID))
	dishes, err := suite.viewModel.Related(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(dishes)

	suite.Require().NoError(suite.viewModel.Load(suite.ctx, jacques.ID))
	dishes, err = suite.viewModel.Related(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(dishes, 1)
}

func (suite *BaseTestSuite) TestRelatedIsCached() {
	cook := suite.addCook("Julia")
	suite.Require().NoError(suite.viewModel.Load(suite.ctx, cook.ID))

	dishes, err := suite.viewModel.Related(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(dishes)

	suite.addDish("Boeuf", &cook.ID)

	dishes, err = suite.viewModel.Related(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(dishes)

	dishes, err = suite.viewModel.LoadRelatedData(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(dishes, 1)
}
