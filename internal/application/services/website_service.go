package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// placeholderImages stand in for uploaded photos, which are not persisted
var placeholderImages = []string{
	"https://images.pexels.com/photos/2182970/pexels-photo-2182970.jpeg?auto=compress&cs=tinysrgb&w=400",
	"https://images.pexels.com/photos/3782218/pexels-photo-3782218.jpeg?auto=compress&cs=tinysrgb&w=400",
	"https://images.pexels.com/photos/3785077/pexels-photo-3785077.jpeg?auto=compress&cs=tinysrgb&w=400",
	"https://images.pexels.com/photos/3756679/pexels-photo-3756679.jpeg?auto=compress&cs=tinysrgb&w=400",
	"https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=400",
}

// WebsiteService handles every read and mutation of the site document.
// Mutations are serialized: each one reads the stored document, edits a
// private copy and writes it back while holding mu.
type WebsiteService struct {
	mu        sync.Mutex
	store     ports.DocumentStore
	ids       ports.IDGenerator
	publisher ports.EventPublisher
	catalog   *entities.Catalog
	validator *Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewWebsiteService creates a new website service
func NewWebsiteService(
	store ports.DocumentStore,
	ids ports.IDGenerator,
	publisher ports.EventPublisher,
	catalog *entities.Catalog,
	validator *Validator,
	logger *logger.Logger,
) *WebsiteService {
	return &WebsiteService{
		store:     store,
		ids:       ids,
		publisher: publisher,
		catalog:   catalog,
		validator: validator,
		logger:    logger.WithComponent("website_service"),
		now:       time.Now,
	}
}

// GetDocument returns the full document and its revision
func (s *WebsiteService) GetDocument(ctx context.Context) (*entities.Document, string, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, "", err
	}

	rev, err := revision(doc)
	if err != nil {
		return nil, "", err
	}
	return doc, rev, nil
}

// ReplaceDocument overwrites the whole document. Missing collections become
// empty ones. A non-empty expectedRevision must match the stored document.
func (s *WebsiteService) ReplaceDocument(ctx context.Context, doc *entities.Document, expectedRevision string) (string, error) {
	if doc == nil {
		doc = entities.NewDocument()
	}
	doc.Normalize()

	if err := s.validateDocument(doc); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if expectedRevision != "" {
		current, err := s.store.Read(ctx)
		if err != nil {
			return "", err
		}
		currentRev, err := revision(current)
		if err != nil {
			return "", err
		}
		if currentRev != expectedRevision {
			return "", entities.ErrRevisionMismatch
		}
	}

	if err := s.store.Write(ctx, doc); err != nil {
		return "", err
	}

	s.logger.LogDocumentChange("document_replaced", map[string]interface{}{
		"orders": len(doc.Orders),
		"team":   len(doc.Team),
	})

	return revision(doc)
}

// AddOrder records a new pending order at the head of the orders collection
func (s *WebsiteService) AddOrder(ctx context.Context, req entities.NewOrder) (*entities.Order, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	var order entities.Order
	err := s.mutate(ctx, func(doc *entities.Document) error {
		order = entities.Order{
			ID:           s.nextOrderID(doc),
			PlanID:       req.PlanID,
			PlanName:     req.PlanName,
			PlanPrice:    req.PlanPrice,
			CustomerInfo: req.CustomerInfo,
			Date:         s.now().UTC().Truncate(time.Millisecond),
			Status:       entities.OrderStatusPending,
		}
		doc.Orders = append([]entities.Order{order}, doc.Orders...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("order_added", map[string]interface{}{
		"order_id": order.ID,
		"plan_id":  order.PlanID,
	})
	s.publish(ctx, ports.EventOrderCreated, order)

	return &order, nil
}

// UpdateOrderStatus changes only the status of the order with the given id
func (s *WebsiteService) UpdateOrderStatus(ctx context.Context, id entities.ID, status entities.OrderStatus) (*entities.Order, error) {
	if !status.IsValid() {
		return nil, entities.ValidationErrors{{Field: "status", Reason: "must be one of pending, completed, cancelled"}}
	}

	var (
		updated  entities.Order
		previous entities.OrderStatus
	)
	err := s.mutate(ctx, func(doc *entities.Document) error {
		idx := doc.OrderIndex(id)
		if idx < 0 {
			return entities.ErrOrderNotFound
		}
		previous = doc.Orders[idx].Status
		doc.Orders[idx].Status = status
		updated = doc.Orders[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("order_status_updated", map[string]interface{}{
		"order_id": id,
		"from":     previous,
		"to":       status,
	})
	s.publish(ctx, ports.EventOrderStatusChanged, map[string]interface{}{
		"order":          updated,
		"previousStatus": previous,
	})

	return &updated, nil
}

// DeleteOrder removes the order with the given id and returns it
func (s *WebsiteService) DeleteOrder(ctx context.Context, id entities.ID) (*entities.Order, error) {
	var removed entities.Order
	err := s.mutate(ctx, func(doc *entities.Document) error {
		idx := doc.OrderIndex(id)
		if idx < 0 {
			return entities.ErrOrderNotFound
		}
		removed = doc.Orders[idx]
		doc.Orders = append(doc.Orders[:idx], doc.Orders[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("order_deleted", map[string]interface{}{"order_id": id})
	s.publish(ctx, ports.EventOrderDeleted, removed)

	return &removed, nil
}

// ListOrders returns orders newest first, optionally only those with one status
func (s *WebsiteService) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]entities.Order, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Status == nil {
		return doc.Orders, nil
	}

	orders := make([]entities.Order, 0, len(doc.Orders))
	for _, order := range doc.Orders {
		if order.Status == *filter.Status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// AddTeamMember appends a member whose id is one past the highest in use
func (s *WebsiteService) AddTeamMember(ctx context.Context, req entities.NewTeamMember) (*entities.TeamMember, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	var member entities.TeamMember
	err := s.mutate(ctx, func(doc *entities.Document) error {
		id := doc.NextMemberID()
		image := req.Image
		if len(req.ImageData) > 0 {
			image = placeholderImage(id)
		}

		member = entities.TeamMember{
			ID:         id,
			Name:       req.Name,
			Role:       req.Role,
			Experience: req.Experience,
			Bio:        req.Bio,
			Image:      image,
			Social:     entities.CompactSocial(req.Social),
		}
		doc.Team = append(doc.Team, member.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("team_member_added", map[string]interface{}{"member_id": member.ID})

	return &member, nil
}

// UpdateTeamMember merges the provided fields into an existing member
func (s *WebsiteService) UpdateTeamMember(ctx context.Context, id entities.ID, req entities.TeamMemberUpdate) (*entities.TeamMember, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	var updated entities.TeamMember
	err := s.mutate(ctx, func(doc *entities.Document) error {
		idx := doc.MemberIndex(id)
		if idx < 0 {
			return entities.ErrTeamMemberNotFound
		}
		if len(req.ImageData) > 0 {
			image := placeholderImage(id)
			req.Image = &image
		}
		doc.Team[idx].Apply(req)
		updated = doc.Team[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("team_member_updated", map[string]interface{}{"member_id": id})

	return &updated, nil
}

// DeleteTeamMember removes the member with the given id and returns it
func (s *WebsiteService) DeleteTeamMember(ctx context.Context, id entities.ID) (*entities.TeamMember, error) {
	var removed entities.TeamMember
	err := s.mutate(ctx, func(doc *entities.Document) error {
		idx := doc.MemberIndex(id)
		if idx < 0 {
			return entities.ErrTeamMemberNotFound
		}
		removed = doc.Team[idx]
		doc.Team = append(doc.Team[:idx], doc.Team[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("team_member_deleted", map[string]interface{}{"member_id": id})

	return &removed, nil
}

// MoveTeamMember places a member at position, clamped to the collection bounds
func (s *WebsiteService) MoveTeamMember(ctx context.Context, id entities.ID, position int) ([]entities.TeamMember, error) {
	var team []entities.TeamMember
	err := s.mutate(ctx, func(doc *entities.Document) error {
		idx := doc.MemberIndex(id)
		if idx < 0 {
			return entities.ErrTeamMemberNotFound
		}

		if position < 0 {
			position = 0
		}
		if position > len(doc.Team)-1 {
			position = len(doc.Team) - 1
		}

		member := doc.Team[idx]
		rest := append(doc.Team[:idx:idx], doc.Team[idx+1:]...)
		reordered := make([]entities.TeamMember, 0, len(doc.Team))
		reordered = append(reordered, rest[:position]...)
		reordered = append(reordered, member)
		reordered = append(reordered, rest[position:]...)
		doc.Team = reordered
		team = reordered
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogDocumentChange("team_member_moved", map[string]interface{}{
		"member_id": id,
		"position":  position,
	})

	return team, nil
}

// ListTeam returns members in display order
func (s *WebsiteService) ListTeam(ctx context.Context) ([]entities.TeamMember, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Team, nil
}

// Stats summarizes orders and team for the dashboard
func (s *WebsiteService) Stats(ctx context.Context) (*entities.Stats, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	stats := doc.Stats()
	return &stats, nil
}

// Catalog returns the bundled reference content
func (s *WebsiteService) Catalog() *entities.Catalog {
	return s.catalog
}

// mutate runs one serialized read-modify-write cycle. Nothing is written
// when fn fails.
func (s *WebsiteService) mutate(ctx context.Context, fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Read(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.store.Write(ctx, doc)
}

func (s *WebsiteService) validateDocument(doc *entities.Document) error {
	if err := s.validator.Validate(doc); err != nil {
		return err
	}
	if errs := checkUniqueIDs(doc); len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *WebsiteService) nextOrderID(doc *entities.Document) entities.ID {
	for {
		id := s.ids.Next()
		if doc.OrderIndex(id) < 0 {
			return id
		}
	}
}

// publish notifies subscribers; the change is already stored, so failures are only logged
func (s *WebsiteService) publish(ctx context.Context, eventType string, payload any) {
	event := ports.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	}

	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warnw("Failed to publish event", "event_id", event.ID, "type", eventType, "error", err)
	}
}

func placeholderImage(id entities.ID) string {
	i := int64(id) % int64(len(placeholderImages))
	if i < 0 {
		i = -i
	}
	return placeholderImages[i]
}

// revision fingerprints a document so writers can detect concurrent changes
func revision(doc *entities.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("fingerprint document: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}
