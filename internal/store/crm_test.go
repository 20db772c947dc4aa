package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

func ptr(v int64) *int64 { return &v }

func TestComputeCRMStats(t *testing.T) {
	sellers := []models.Seller{
		{ID: 1, Name: "Lead"},
		{ID: 2, Name: "Ana", LeaderID: ptr(1)},
		{ID: 3, Name: "Bo", LeaderID: ptr(1)},
	}
	clients := []models.Client{
		{ID: 1, Status: models.ClientActive, SellerID: ptr(2)},
		{ID: 2, Status: models.ClientActive, SellerID: ptr(2)},
		{ID: 3, Status: models.ClientProspect, SellerID: ptr(3)},
		{ID: 4, Status: models.ClientInactive},
	}
	commissions := []models.Commission{{Amount: 10}, {Amount: 2.5}}

	stats := ComputeCRMStats(sellers, clients, commissions)

	if stats.TotalSellers != 3 || stats.TotalClients != 4 {
		t.Errorf("unexpected totals %+v", stats)
	}
	if stats.ClientsByStatus[models.ClientActive] != 2 || stats.ClientsByStatus[models.ClientProspect] != 1 {
		t.Errorf("unexpected status counts %v", stats.ClientsByStatus)
	}
	if stats.ClientsPerSeller[2] != 2 || stats.ClientsPerSeller[3] != 1 || stats.Unassigned != 1 {
		t.Errorf("unexpected per-seller counts %v", stats.ClientsPerSeller)
	}
	if stats.TeamSize[1] != 2 {
		t.Errorf("expected team of 2, got %d", stats.TeamSize[1])
	}
	if stats.CommissionTotal != 12.5 {
		t.Errorf("expected commission total 12.5, got %v", stats.CommissionTotal)
	}
}

func TestCRMLoadAndRecompute(t *testing.T) {
	clientsBody := `[{"id":1,"name":"Acme","status":"active","seller_id":2}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sellers":
			w.Write([]byte(`{"data":[{"id":1,"name":"Lead"},{"id":2,"name":"Ana","leader_id":1}]}`))
		case "/api/clients":
			w.Write([]byte(clientsBody))
		case "/api/commissions":
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)

	client := inventory.NewClient(config.APIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
	crm := NewCRM(client)
	if err := crm.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := crm.Stats().ClientsPerSeller[2]; got != 1 {
		t.Errorf("expected 1 client for seller 2, got %d", got)
	}
	if team := crm.Team(1); len(team) != 1 || team[0].Name != "Ana" {
		t.Errorf("unexpected team %+v", team)
	}

	clientsBody = `[{"id":1,"name":"Acme","status":"active","seller_id":2},{"id":2,"name":"Beta","status":"prospect","seller_id":2}]`
	if err := crm.Clients.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := crm.Stats().ClientsPerSeller[2]; got != 2 {
		t.Errorf("expected stats recomputed after refetch, got %d", got)
	}
}
