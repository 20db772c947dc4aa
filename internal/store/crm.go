package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// CRM holds the sellers, clients and commissions shown across the CRM pages.
type CRM struct {
	Sellers     *Query[models.Seller]
	Clients     *Query[models.Client]
	Commissions *Query[models.Commission]
}

func NewCRM(client *inventory.Client) *CRM {
	return &CRM{
		Sellers:     NewQuery("sellers", ListFetcher(client.Sellers().List)),
		Clients:     NewQuery("clients", ListFetcher(client.Clients().List)),
		Commissions: NewQuery("commissions", ListFetcher(client.Commissions().List)),
	}
}

// Load enables all three queries in parallel.
func (c *CRM) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Sellers.EnsureLoaded(gctx) })
	g.Go(func() error { return c.Clients.EnsureLoaded(gctx) })
	g.Go(func() error { return c.Commissions.EnsureLoaded(gctx) })
	return g.Wait()
}

// CRMStats are derived from the cached lists on every call.
type CRMStats struct {
	TotalSellers     int
	TotalClients     int
	ClientsByStatus  map[models.ClientStatus]int
	ClientsPerSeller map[int64]int
	TeamSize         map[int64]int
	Unassigned       int
	CommissionTotal  float64
}

func (c *CRM) Stats() CRMStats {
	return ComputeCRMStats(c.Sellers.Items(), c.Clients.Items(), c.Commissions.Items())
}

// ComputeCRMStats counts clients by status and by seller, and team members by leader.
func ComputeCRMStats(sellers []models.Seller, clients []models.Client, commissions []models.Commission) CRMStats {
	stats := CRMStats{
		TotalSellers:     len(sellers),
		TotalClients:     len(clients),
		ClientsByStatus:  map[models.ClientStatus]int{},
		ClientsPerSeller: map[int64]int{},
		TeamSize:         map[int64]int{},
	}
	for _, s := range sellers {
		if s.LeaderID != nil {
			stats.TeamSize[*s.LeaderID]++
		}
	}
	for _, cl := range clients {
		stats.ClientsByStatus[cl.Status]++
		if cl.SellerID == nil {
			stats.Unassigned++
			continue
		}
		stats.ClientsPerSeller[*cl.SellerID]++
	}
	for _, cm := range commissions {
		stats.CommissionTotal += cm.Amount
	}
	return stats
}

// Team returns the sellers led by leaderID.
func (c *CRM) Team(leaderID int64) []models.Seller {
	var team []models.Seller
	for _, s := range c.Sellers.Items() {
		if s.LeaderID != nil && *s.LeaderID == leaderID {
			team = append(team, s)
		}
	}
	return team
}
