package console

import (
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// Deps carries what every entity dialog needs.
type Deps struct {
	Client    *inventory.Client
	Notifier  Notifier
	Confirmer Confirmer
	Logger    *zap.Logger
}

func (d Deps) logger(name string) *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger.Named(name)
}

func (d Deps) confirmer() Confirmer {
	if d.Confirmer == nil {
		return refuseAll{}
	}
	return d.Confirmer
}

// NewSellerDialog offers existing sellers as team leaders.
func NewSellerDialog(deps Deps, onSuccess func(models.Seller)) *Dialog[models.Seller] {
	return NewDialog[models.Seller]("seller", deps.Client.Sellers(), deps.Notifier,
		WithReference[models.Seller]("leaders", ChoicesFrom(deps.Client.Sellers().List)),
		WithOnSuccess(onSuccess),
		WithConfirmer[models.Seller](deps.confirmer()),
		WithDialogLogger[models.Seller](deps.logger("dialog.seller")),
	)
}

// NewClientDialog offers sellers to assign the client to.
func NewClientDialog(deps Deps, onSuccess func(models.Client)) *Dialog[models.Client] {
	return NewDialog[models.Client]("client", deps.Client.Clients(), deps.Notifier,
		WithReference[models.Client]("sellers", ChoicesFrom(deps.Client.Sellers().List)),
		WithOnSuccess(onSuccess),
		WithConfirmer[models.Client](deps.confirmer()),
		WithDialogLogger[models.Client](deps.logger("dialog.client")),
	)
}

// NewRoomDialog offers customers as room owners.
func NewRoomDialog(deps Deps, onSuccess func(models.Room)) *Dialog[models.Room] {
	return NewDialog[models.Room]("room", deps.Client.Rooms(), deps.Notifier,
		WithReference[models.Room]("customers", ChoicesFrom(deps.Client.Customers().List)),
		WithOnSuccess(onSuccess),
		WithConfirmer[models.Room](deps.confirmer()),
		WithDialogLogger[models.Room](deps.logger("dialog.room")),
	)
}

// NewUnitDialog offers the rooms a unit can live in.
func NewUnitDialog(deps Deps, onSuccess func(models.Unit)) *Dialog[models.Unit] {
	return NewDialog[models.Unit]("unit", deps.Client.Units(), deps.Notifier,
		WithReference[models.Unit]("rooms", ChoicesFrom(deps.Client.Rooms().List)),
		WithOnSuccess(onSuccess),
		WithConfirmer[models.Unit](deps.confirmer()),
		WithDialogLogger[models.Unit](deps.logger("dialog.unit")),
	)
}

// NewProductDialog offers categories, locations and vendors.
func NewProductDialog(deps Deps, onSuccess func(models.Product)) *Dialog[models.Product] {
	return NewDialog[models.Product]("product", deps.Client.Products(), deps.Notifier,
		WithReference[models.Product]("categories", ChoicesFrom(deps.Client.Categories().List)),
		WithReference[models.Product]("locations", ChoicesFrom(deps.Client.Locations().List)),
		WithReference[models.Product]("vendors", ChoicesFrom(deps.Client.Vendors().List)),
		WithOnSuccess(onSuccess),
		WithConfirmer[models.Product](deps.confirmer()),
		WithDialogLogger[models.Product](deps.logger("dialog.product")),
	)
}

// NewEntityDialog covers entities without reference dropdowns.
func NewEntityDialog[T models.Entity](deps Deps, noun string, resource *inventory.Resource[T], onSuccess func(T)) *Dialog[T] {
	return NewDialog[T](noun, resource, deps.Notifier,
		WithOnSuccess(onSuccess),
		WithConfirmer[T](deps.confirmer()),
		WithDialogLogger[T](deps.logger("dialog."+noun)),
	)
}
