package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lawflow/internal/domain"
)

type clientService struct {
	clientRepo     domain.ClientRepository
	contextTimeout time.Duration
}

func NewClientService(clientRepo domain.ClientRepository, timeout time.Duration) domain.ClientService {
	return &clientService{clientRepo: clientRepo, contextTimeout: timeout}
}

func (s *clientService) ListClients(ctx context.Context, req domain.PageRequest) (domain.Page[*domain.Client], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.clientRepo.Source(), req, domain.SortableFor(domain.EntityClients))
	if err != nil {
		return page, fmt.Errorf("list clients: %w", err)
	}
	return page, nil
}

func (s *clientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *clientService) CreateClient(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}
