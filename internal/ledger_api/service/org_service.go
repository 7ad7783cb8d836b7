package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
)

// OrgServiceImpl implements the OrgService interface
type OrgServiceImpl struct {
	fundRepo fund.Repository
	unitRepo unit.Repository
}

// NewOrgService creates a new fund and entity unit service
func NewOrgService(fundRepo fund.Repository, unitRepo unit.Repository) OrgService {
	return &OrgServiceImpl{
		fundRepo: fundRepo,
		unitRepo: unitRepo,
	}
}

// CreateFund creates a new fund for an entity
func (s *OrgServiceImpl) CreateFund(ctx context.Context, entityID uuid.UUID, code, name string) (*fund.Fund, error) {
	f, err := fund.NewFund(entityID, code, name)
	if err != nil {
		return nil, err
	}
	if err := s.fundRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFundByID retrieves a fund by its ID, returns ErrFundNotFound if not found
func (s *OrgServiceImpl) GetFundByID(ctx context.Context, id uuid.UUID) (*fund.Fund, error) {
	return s.fundRepo.GetByID(ctx, id)
}

// ListFunds returns all funds of an entity ordered by code
func (s *OrgServiceImpl) ListFunds(ctx context.Context, entityID uuid.UUID) ([]*fund.Fund, error) {
	return s.fundRepo.ListByEntity(ctx, entityID)
}

// CreateUnit creates a new entity unit
func (s *OrgServiceImpl) CreateUnit(ctx context.Context, entityID uuid.UUID, name string) (*unit.EntityUnit, error) {
	u, err := unit.NewEntityUnit(entityID, name)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUnitByID retrieves an entity unit by its ID, returns ErrUnitNotFound if not found
func (s *OrgServiceImpl) GetUnitByID(ctx context.Context, id uuid.UUID) (*unit.EntityUnit, error) {
	return s.unitRepo.GetByID(ctx, id)
}

// ListUnits returns all units of an entity ordered by name
func (s *OrgServiceImpl) ListUnits(ctx context.Context, entityID uuid.UUID) ([]*unit.EntityUnit, error) {
	return s.unitRepo.ListByEntity(ctx, entityID)
}
