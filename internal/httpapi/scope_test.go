package httpapi

import (
	"net/http"
	"testing"

	"technest/internal/testutil"
	"technest/models"
)

func TestAssetsSeedAndReplace(t *testing.T) {
	_, ts := newTestServer(t, "apiassets")
	token := testutil.BearerToken(t, testSecret, "alice", "user")

	resp := request(t, ts, http.MethodGet, "/api/assets", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get assets: status %d", resp.StatusCode)
	}
	var cats []models.AssetCategory
	decodeInto(t, resp, &cats)
	if len(cats) != 3 {
		t.Fatalf("expected starter inventory, got %d categories", len(cats))
	}

	replacement := []models.AssetCategory{{ID: "c1", Name: "Vehicles", Items: []models.Asset{
		{ID: "a1", Name: "Forklift", InventoryNumber: "INV-9", Location: "Warehouse", Status: "in service"},
	}}}
	resp = request(t, ts, http.MethodPut, "/api/assets", token, replacement)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save assets: status %d", resp.StatusCode)
	}

	resp = request(t, ts, http.MethodGet, "/api/assets", token, nil)
	decodeInto(t, resp, &cats)
	if len(cats) != 1 || cats[0].Name != "Vehicles" {
		t.Fatalf("partition not replaced: %+v", cats)
	}
}

func TestAssetsArePartitionedPerUser(t *testing.T) {
	_, ts := newTestServer(t, "apipartition")
	alice := testutil.BearerToken(t, testSecret, "alice", "user")
	bob := testutil.BearerToken(t, testSecret, "bob", "user")

	resp := request(t, ts, http.MethodPut, "/api/assets", alice, []models.AssetCategory{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear alice assets: status %d", resp.StatusCode)
	}

	// Bob still gets his own freshly seeded partition.
	resp = request(t, ts, http.MethodGet, "/api/assets", bob, nil)
	var cats []models.AssetCategory
	decodeInto(t, resp, &cats)
	if len(cats) != 3 {
		t.Fatalf("bob's partition affected by alice: %+v", cats)
	}

	resp = request(t, ts, http.MethodGet, "/api/assets", alice, nil)
	decodeInto(t, resp, &cats)
	if len(cats) != 0 {
		t.Fatalf("alice's cleared partition came back: %+v", cats)
	}
}

func TestTickets(t *testing.T) {
	_, ts := newTestServer(t, "apitickets")
	token := testutil.BearerToken(t, testSecret, "alice", "user")

	resp := request(t, ts, http.MethodGet, "/api/tickets", token, nil)
	var tickets []models.Ticket
	decodeInto(t, resp, &tickets)
	if len(tickets) != 0 {
		t.Fatalf("fresh partition not empty: %+v", tickets)
	}

	resp = request(t, ts, http.MethodPost, "/api/tickets", token, map[string]string{
		"subject": "Broken printer", "message": "Paper jam on floor 2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create ticket: status %d", resp.StatusCode)
	}
	var created models.Ticket
	decodeInto(t, resp, &created)
	if created.ID == "" || created.Status != models.TicketStatusOpen || created.CreatedAt == "" {
		t.Fatalf("unexpected ticket: %+v", created)
	}

	// Missing subject is a bad request.
	resp = request(t, ts, http.MethodPost, "/api/tickets", token, map[string]string{"message": "no subject"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty subject: status %d", resp.StatusCode)
	}

	// Whole-partition replace marks the ticket resolved.
	created.Status = models.TicketStatusResolved
	resp = request(t, ts, http.MethodPut, "/api/tickets", token, []models.Ticket{created})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save tickets: status %d", resp.StatusCode)
	}
	resp = request(t, ts, http.MethodGet, "/api/tickets", token, nil)
	decodeInto(t, resp, &tickets)
	if len(tickets) != 1 || tickets[0].Status != models.TicketStatusResolved {
		t.Fatalf("replace not persisted: %+v", tickets)
	}
}
