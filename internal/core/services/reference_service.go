package services

import (
	"context"
	"fmt"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
)

// employeeService serves the employee directory.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	branchSvc    portssvc.BranchSvcFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, branchSvc portssvc.BranchSvcFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo, branchSvc: branchSvc}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

func (s *employeeService) ListEmployeesByBranch(ctx context.Context, caller domain.Caller, branchID *string) ([]domain.Employee, error) {
	filter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, branchID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return nil, fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}
	return s.employeeRepo.ListEmployeesByBranch(ctx, *filter)
}

// contactService serves counterparties.
type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new ContactService.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	return s.contactRepo.FindContactByID(ctx, contactID)
}

func (s *contactService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contactRepo.ListContacts(ctx)
}
