package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/core/services"
)

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Test Suite Setup ---
type BranchServiceTestSuite struct {
	suite.Suite
	mockBranchRepo *MockBranchRepository
	service        portssvc.BranchSvcFacade
	ownBranchID    string
	accountant     domain.Caller
	admin          domain.Caller
}

func (suite *BranchServiceTestSuite) SetupTest() {
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.service = services.NewBranchService(suite.mockBranchRepo)

	suite.ownBranchID = uuid.NewString()
	ownBranchID := suite.ownBranchID
	suite.accountant = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAccountant, BranchID: &ownBranchID}
	suite.admin = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_AccountantDefaultsToOwnBranch() {
	ctx := context.Background()

	branchID, err := suite.service.ResolveBranchID(ctx, suite.accountant, nil)

	suite.Require().NoError(err)
	suite.Equal(suite.ownBranchID, branchID)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "FindBranchByID", mock.Anything, mock.Anything)
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_AccountantForeignBranchForbidden() {
	ctx := context.Background()
	foreignBranchID := uuid.NewString()

	_, err := suite.service.ResolveBranchID(ctx, suite.accountant, &foreignBranchID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_AccountantOwnBranchExplicitly() {
	ctx := context.Background()
	ownBranchID := suite.ownBranchID

	branchID, err := suite.service.ResolveBranchID(ctx, suite.accountant, &ownBranchID)

	suite.Require().NoError(err)
	suite.Equal(suite.ownBranchID, branchID)
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_AdminMustNameBranch() {
	ctx := context.Background()

	_, err := suite.service.ResolveBranchID(ctx, suite.admin, nil)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_AdminWithExistingBranch() {
	ctx := context.Background()
	branchID := uuid.NewString()
	branch := &domain.Branch{BranchID: branchID, Name: "Downtown", IsActive: true}

	suite.mockBranchRepo.On("FindBranchByID", ctx, branchID).Return(branch, nil).Once()

	resolved, err := suite.service.ResolveBranchID(ctx, suite.admin, &branchID)

	suite.Require().NoError(err)
	suite.Equal(branchID, resolved)
	suite.mockBranchRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_InactiveBranchRejected() {
	ctx := context.Background()
	branchID := uuid.NewString()
	branch := &domain.Branch{BranchID: branchID, Name: "Closed", IsActive: false}

	suite.mockBranchRepo.On("FindBranchByID", ctx, branchID).Return(branch, nil).Once()

	_, err := suite.service.ResolveBranchID(ctx, suite.admin, &branchID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *BranchServiceTestSuite) TestResolveBranchID_UnknownBranch() {
	ctx := context.Background()
	branchID := uuid.NewString()

	suite.mockBranchRepo.On("FindBranchByID", ctx, branchID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveBranchID(ctx, suite.admin, &branchID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *BranchServiceTestSuite) TestEffectiveBranchFilter_AccountantPinnedToOwnBranch() {
	ctx := context.Background()

	filter, err := suite.service.EffectiveBranchFilter(ctx, suite.accountant, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(filter)
	suite.Equal(suite.ownBranchID, *filter)
}

func (suite *BranchServiceTestSuite) TestEffectiveBranchFilter_AccountantForeignBranchForbidden() {
	ctx := context.Background()
	foreignBranchID := uuid.NewString()

	_, err := suite.service.EffectiveBranchFilter(ctx, suite.accountant, &foreignBranchID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
}

func (suite *BranchServiceTestSuite) TestEffectiveBranchFilter_AdminUnrestricted() {
	ctx := context.Background()

	filter, err := suite.service.EffectiveBranchFilter(ctx, suite.admin, nil)

	suite.Require().NoError(err)
	suite.Nil(filter, "no filter means all branches")
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
