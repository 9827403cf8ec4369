package store

import (
	"testing"

	"technest/internal/testutil"
	"technest/models"
)

func TestAssets_SeedsOnFirstLoad(t *testing.T) {
	s := NewScope(testutil.OpenKV(t))

	first, err := s.Assets("alice")
	if err != nil {
		t.Fatalf("assets: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected seeded starter inventory")
	}

	// Second read returns the persisted seed, not a fresh one.
	second, err := s.Assets("alice")
	if err != nil {
		t.Fatalf("assets again: %v", err)
	}
	if len(second) != len(first) || second[0].ID != first[0].ID {
		t.Fatalf("seed not persisted: %+v vs %+v", second[0], first[0])
	}
}

func TestAssets_PartitionsAreIsolated(t *testing.T) {
	s := NewScope(testutil.OpenKV(t))

	mine := []models.AssetCategory{{ID: "c1", Name: "Printers", Items: []models.Asset{{ID: "a1", Name: "LaserJet"}}}}
	if err := s.SaveAssets("alice", mine); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Bob's first load sees the default seed, never Alice's data.
	theirs, err := s.Assets("bob")
	if err != nil {
		t.Fatalf("assets(bob): %v", err)
	}
	for _, c := range theirs {
		if c.Name == "Printers" {
			t.Fatalf("partition leaked across users")
		}
	}

	got, err := s.Assets("alice")
	if err != nil || len(got) != 1 || got[0].Name != "Printers" {
		t.Fatalf("alice partition lost: %+v err=%v", got, err)
	}
}

func TestSaveAssets_OverwritesWholePartition(t *testing.T) {
	s := NewScope(testutil.OpenKV(t))
	if err := s.SaveAssets("alice", []models.AssetCategory{{ID: "c1", Name: "Old"}, {ID: "c2", Name: "Older"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveAssets("alice", []models.AssetCategory{{ID: "c3", Name: "New"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Assets("alice")
	if err != nil || len(got) != 1 || got[0].Name != "New" {
		t.Fatalf("overwrite not total: %+v err=%v", got, err)
	}
}

func TestTickets(t *testing.T) {
	s := NewScope(testutil.OpenKV(t))

	empty, err := s.Tickets("alice")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty ticket partition: %+v err=%v", empty, err)
	}

	tk, err := s.AddTicket("alice", "Broken screen", "The display flickers.")
	if err != nil {
		t.Fatalf("add ticket: %v", err)
	}
	if tk.ID == "" || tk.Status != models.TicketStatusOpen || tk.CreatedAt == "" {
		t.Fatalf("unexpected ticket: %+v", tk)
	}

	if _, err := s.AddTicket("alice", "", "no subject"); err == nil {
		t.Fatalf("expected error for empty subject")
	}

	list, err := s.Tickets("alice")
	if err != nil || len(list) != 1 || list[0].ID != tk.ID {
		t.Fatalf("ticket not persisted: %+v err=%v", list, err)
	}

	other, err := s.Tickets("bob")
	if err != nil || len(other) != 0 {
		t.Fatalf("ticket leaked across users: %+v", other)
	}
}
