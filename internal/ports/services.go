package ports

import (
	"context"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

// WebsiteService interface for every operation on the site document
type WebsiteService interface {
	GetDocument(ctx context.Context) (*entities.Document, string, error)
	ReplaceDocument(ctx context.Context, doc *entities.Document, expectedRevision string) (string, error)

	AddOrder(ctx context.Context, req entities.NewOrder) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, id entities.ID, status entities.OrderStatus) (*entities.Order, error)
	DeleteOrder(ctx context.Context, id entities.ID) (*entities.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]entities.Order, error)

	AddTeamMember(ctx context.Context, req entities.NewTeamMember) (*entities.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id entities.ID, req entities.TeamMemberUpdate) (*entities.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id entities.ID) (*entities.TeamMember, error)
	MoveTeamMember(ctx context.Context, id entities.ID, position int) ([]entities.TeamMember, error)
	ListTeam(ctx context.Context) ([]entities.TeamMember, error)

	Stats(ctx context.Context) (*entities.Stats, error)
	Catalog() *entities.Catalog
}

// OrderFilter narrows ListOrders; a nil Status lists every order
type OrderFilter struct {
	Status *entities.OrderStatus
}

// Request types
type UpdateOrderStatusRequest struct {
	Status entities.OrderStatus `json:"status" validate:"required,order_status"`
}

type MoveTeamMemberRequest struct {
	Position *int `json:"position" validate:"required,gte=0"`
}
