// Package services holds the application logic that sits between the
// presentation layers and the Record Store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/logging"
	"github.com/dmitrijs2005/signbook/internal/models"
	"github.com/dmitrijs2005/signbook/internal/repositories/records"
	"github.com/dmitrijs2005/signbook/internal/signature"
)

// ErrSignatureRequired is returned when a create or update arrives without an upload.
var ErrSignatureRequired = fmt.Errorf("%w: please upload a signature", common.ErrorValidation)

// RecordInput is the form data for a create or update.
type RecordInput struct {
	FullName  string
	Address   string
	Signature []byte
}

type RecordService interface {
	Create(ctx context.Context, in RecordInput) (int64, error)
	Update(ctx context.Context, id int64, in RecordInput) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Record, error)
	Get(ctx context.Context, id int64) (*models.Record, error)
	Count(ctx context.Context) (int64, error)
}

type recordService struct {
	repo   records.Repository
	logger logging.Logger
}

func NewRecordService(repo records.Repository, l logging.Logger) RecordService {
	return &recordService{repo: repo, logger: l.With("module", "record_service")}
}

// validate checks what the store itself never does: an upload must be
// present and must be a PNG or JPEG image. Text fields are free-form.
func validate(in RecordInput) (RecordInput, error) {
	if len(in.Signature) == 0 {
		return in, ErrSignatureRequired
	}
	if _, err := signature.Detect(in.Signature); err != nil {
		return in, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Address = strings.TrimSpace(in.Address)
	return in, nil
}

func (s *recordService) Create(ctx context.Context, in RecordInput) (int64, error) {
	in, err := validate(in)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, in.FullName, in.Address, in.Signature)
	if err != nil {
		s.logger.Error(ctx, "create failed", "error", err)
		return 0, fmt.Errorf("error creating record: %w", err)
	}

	s.logger.Info(ctx, "record created", "id", id, "signature_bytes", len(in.Signature))
	return id, nil
}

func (s *recordService) Update(ctx context.Context, id int64, in RecordInput) error {
	in, err := validate(in)
	if err != nil {
		return err
	}

	found, err := s.repo.Update(ctx, &models.Record{ID: id, FullName: in.FullName, Address: in.Address, Signature: in.Signature})
	if err != nil {
		s.logger.Error(ctx, "update failed", "id", id, "error", err)
		return fmt.Errorf("error updating record: %w", err)
	}
	if !found {
		s.logger.Warn(ctx, "update of missing record", "id", id)
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}

	s.logger.Info(ctx, "record updated", "id", id)
	return nil
}

func (s *recordService) Delete(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "delete failed", "id", id, "error", err)
		return fmt.Errorf("error deleting record: %w", err)
	}
	if !found {
		s.logger.Warn(ctx, "delete of missing record", "id", id)
		return fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}

	s.logger.Info(ctx, "record deleted", "id", id)
	return nil
}

func (s *recordService) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return rows, nil
}

func (s *recordService) Get(ctx context.Context, id int64) (*models.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error retrieving record: %w", err)
	}
	return rec, nil
}

func (s *recordService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting records: %w", err)
	}
	return n, nil
}
