package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edsis/inventory-service/pkg/errors"
	"github.com/edsis/inventory-service/pkg/logging"

	"github.com/edsis/inventory-service/internal/domain"
)

// DiscountService manages discount rules and cascades rule edits into the
// denormalized pricing of affected products
type DiscountService struct {
	discounts domain.DiscountRepository
	products  domain.ProductRepository
	logger    *logging.Logger
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(discounts domain.DiscountRepository, products domain.ProductRepository, logger *logging.Logger) *DiscountService {
	return &DiscountService{
		discounts: discounts,
		products:  products,
		logger:    logger,
	}
}

// ListDiscounts returns all discount rules
func (s *DiscountService) ListDiscounts(ctx context.Context) ([]*DiscountDTO, error) {
	discounts, err := s.discounts.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list discounts", "error", err)
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return ToDiscountDTOs(discounts), nil
}

// ManageDiscount creates, edits or deletes a discount rule. Editing a rule
// rewrites the denormalized discount lines and nett price of every product
// referencing it.
func (s *DiscountService) ManageDiscount(ctx context.Context, cmd ManageDiscountCommand) (*DiscountDTO, error) {
	in := cmd.Discount

	if cmd.Mode == ModeDelete {
		if in.ID != "" {
			if err := s.discounts.Delete(ctx, in.ID); err != nil {
				s.logger.Error("Failed to delete discount", "discountId", in.ID, "error", err)
				return nil, fmt.Errorf("failed to delete discount: %w", err)
			}
			s.logger.Info("Deleted discount", "discountId", in.ID)
		}
		return nil, nil
	}

	discountID := in.ID
	if discountID == "" {
		discountID = uuid.New().String()
	}

	name := strings.TrimSpace(in.Name)
	if name != "" {
		existing, err := s.discounts.FindByName(ctx, name)
		if err != nil {
			s.logger.Error("Failed to check discount name", "name", name, "error", err)
			return nil, fmt.Errorf("failed to check discount name: %w", err)
		}
		if existing != nil && existing.ID != discountID {
			return nil, errors.ErrBadRequest(fmt.Sprintf("discount name %q already exists", name))
		}
	}

	current, err := s.discounts.FindByID(ctx, discountID)
	if err != nil {
		s.logger.Error("Failed to get discount", "discountId", discountID, "error", err)
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	createdAt := time.Now()
	if current != nil {
		createdAt = current.CreatedAt
	}

	discount := &domain.Discount{
		ID:        discountID,
		Name:      name,
		Value:     in.Value,
		IsActive:  isActive,
		CreatedAt: createdAt,
	}

	if err := s.discounts.Save(ctx, discount); err != nil {
		s.logger.Error("Failed to save discount", "discountId", discountID, "error", err)
		return nil, fmt.Errorf("failed to save discount: %w", err)
	}

	if cmd.Mode == ModeEdit {
		if err := s.cascade(ctx, discount); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Managed discount", "mode", cmd.Mode, "discountId", discountID, "value", in.Value)
	return ToDiscountDTO(discount), nil
}

// cascade pushes an edited rule into every product carrying it
func (s *DiscountService) cascade(ctx context.Context, discount *domain.Discount) error {
	affected, err := s.products.FindByDiscountID(ctx, discount.ID)
	if err != nil {
		s.logger.Error("Failed to find affected products", "discountId", discount.ID, "error", err)
		return fmt.Errorf("failed to find affected products: %w", err)
	}

	updates := make([]domain.ProductDiscountUpdate, 0, len(affected))
	for _, p := range affected {
		changed := false
		lines := make([]domain.DiscountLine, len(p.Discounts))
		copy(lines, p.Discounts)
		for i := range lines {
			if lines[i].ID == discount.ID {
				lines[i].Name = discount.Name
				lines[i].Value = discount.Value
				changed = true
			}
		}
		if !changed {
			continue
		}

		updates = append(updates, domain.ProductDiscountUpdate{
			ProductID:    p.ID,
			Discounts:    lines,
			NettPriceIDR: domain.NettPriceIDR(p.RetailPriceIDR, lines),
		})
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.products.UpdateDiscountPricing(ctx, updates); err != nil {
		s.logger.Error("Failed to cascade discount edit", "discountId", discount.ID, "count", len(updates), "error", err)
		return fmt.Errorf("failed to cascade discount edit: %w", err)
	}

	s.logger.Info("Cascaded discount edit", "discountId", discount.ID, "products", len(updates))
	return nil
}
