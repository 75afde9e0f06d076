package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"pos-admin-api/internal/model"
	"pos-admin-api/internal/repository"
	"pos-admin-api/pkg/apierror"
)

// Mode names the backend currently serving requests.
type Mode string

const (
	ModeRemote   Mode = "remote"
	ModeFallback Mode = "fallback"
)

// Request describes one record operation.
type Request struct {
	Resource model.Resource
	Op       model.Operation
	ID       string
	Payload  model.Record
}

// Result carries what an operation produced: Records for list, Record for
// create and update, nothing for delete.
type Result struct {
	Record  model.Record
	Records []model.Record
}

// TransportSelector routes every request to exactly one backend. It tries
// the remote service first and, once the remote has failed with an
// authorization or network error, demotes itself to the fallback store for
// the rest of its lifetime. Other remote errors are returned to the caller
// untouched.
type TransportSelector struct {
	remote   repository.RecordRepository
	fallback repository.RecordRepository
	demoted  atomic.Bool
}

// NewTransportSelector creates a selector. fallback may be nil, in which
// case every remote error is returned to the caller.
func NewTransportSelector(remote, fallback repository.RecordRepository) *TransportSelector {
	return &TransportSelector{
		remote:   remote,
		fallback: fallback,
	}
}

// Demoted reports whether the selector has switched to the fallback store.
func (s *TransportSelector) Demoted() bool {
	return s.demoted.Load()
}

// Mode returns the backend requests currently go to.
func (s *TransportSelector) Mode() Mode {
	if s.Demoted() {
		return ModeFallback
	}
	return ModeRemote
}

// Demote switches to the fallback store permanently.
func (s *TransportSelector) Demote(reason error) {
	if s.fallback == nil {
		return
	}
	if s.demoted.CompareAndSwap(false, true) {
		log.Printf("[TransportSelector] Remote unavailable, switching to local fallback: %v", reason)
	}
}

// Execute runs req against the selected backend.
func (s *TransportSelector) Execute(ctx context.Context, req Request) (Result, error) {
	if req.Op != model.OpList && req.Op != model.OpCreate && req.Op != model.OpUpdate && req.Op != model.OpDelete {
		return Result{}, apierror.BadRequest(fmt.Sprintf("unknown operation %q", req.Op))
	}

	if s.Demoted() {
		return dispatch(ctx, s.fallback, req)
	}

	res, err := dispatch(ctx, s.remote, req)
	if err == nil {
		return res, nil
	}
	if s.fallback == nil {
		return Result{}, err
	}

	switch {
	case errors.Is(err, apierror.ErrUnauthorized), errors.Is(err, apierror.ErrTransport):
		s.Demote(err)
		return dispatch(ctx, s.fallback, req)
	case errors.Is(err, apierror.ErrUnconfigured):
		// A URL may still be configured later, so this call alone goes local.
		return dispatch(ctx, s.fallback, req)
	default:
		return Result{}, err
	}
}

func dispatch(ctx context.Context, backend repository.RecordRepository, req Request) (Result, error) {
	switch req.Op {
	case model.OpList:
		records, err := backend.List(ctx, req.Resource)
		return Result{Records: records}, err
	case model.OpCreate:
		rec, err := backend.Create(ctx, req.Resource, req.Payload)
		return Result{Record: rec}, err
	case model.OpUpdate:
		rec, err := backend.Update(ctx, req.Resource, req.ID, req.Payload)
		return Result{Record: rec}, err
	default:
		return Result{}, backend.Delete(ctx, req.Resource, req.ID)
	}
}

// List implements repository.RecordRepository.
func (s *TransportSelector) List(ctx context.Context, resource model.Resource) ([]model.Record, error) {
	res, err := s.Execute(ctx, Request{Resource: resource, Op: model.OpList})
	return res.Records, err
}

// Create implements repository.RecordRepository.
func (s *TransportSelector) Create(ctx context.Context, resource model.Resource, fields model.Record) (model.Record, error) {
	res, err := s.Execute(ctx, Request{Resource: resource, Op: model.OpCreate, Payload: fields})
	return res.Record, err
}

// Update implements repository.RecordRepository.
func (s *TransportSelector) Update(ctx context.Context, resource model.Resource, id string, fields model.Record) (model.Record, error) {
	res, err := s.Execute(ctx, Request{Resource: resource, Op: model.OpUpdate, ID: id, Payload: fields})
	return res.Record, err
}

// Delete implements repository.RecordRepository.
func (s *TransportSelector) Delete(ctx context.Context, resource model.Resource, id string) error {
	_, err := s.Execute(ctx, Request{Resource: resource, Op: model.OpDelete, ID: id})
	return err
}

var _ repository.RecordRepository = (*TransportSelector)(nil)
