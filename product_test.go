package shop

import (
	"testing"

	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
)

func TestRecordToProduct(t *testing.T) {
	record := api.Product{
		ID:            "ZmGrkLRPXOTpxsU4jjAcv",
		Brand:         "Acer",
		Model:         "Iconia Talk S",
		Price:         170,
		ImgURL:        "https://example.test/iconia.jpg",
		CPU:           "Mediatek MT8735",
		RAM:           api.StringList{"2 GB RAM"},
		PrimaryCamera: api.StringList{"13 MP", "autofocus"},
		Options: api.Options{
			Colors:   []api.Variant{{Code: 1000, Name: "Black"}},
			Storages: []api.Variant{{Code: 64, Name: "16 GB"}},
		},
	}

	p := recordToProduct(record)

	if p.ID != record.ID || p.Brand != "Acer" || p.Model != "Iconia Talk S" {
		t.Errorf("identity fields = %+v", p)
	}
	if p.Price != 170 {
		t.Errorf("Price = %v, want 170", p.Price)
	}
	if p.ImageURL != "https://example.test/iconia.jpg" {
		t.Errorf("ImageURL = %q", p.ImageURL)
	}
	if p.RAM != "2 GB RAM" {
		t.Errorf("RAM = %q, want first list entry", p.RAM)
	}
	if len(p.PrimaryCamera) != 2 {
		t.Errorf("PrimaryCamera = %v, want both entries", p.PrimaryCamera)
	}
	if len(p.Colors) != 1 || p.Colors[0] != (Variant{Code: 1000, Name: "Black"}) {
		t.Errorf("Colors = %+v", p.Colors)
	}
	if len(p.Storages) != 1 || p.Storages[0] != (Variant{Code: 64, Name: "16 GB"}) {
		t.Errorf("Storages = %+v", p.Storages)
	}
}

func TestRecordToProduct_Empty(t *testing.T) {
	p := recordToProduct(api.Product{ID: "1"})

	if p.Price != 0 || p.RAM != "" {
		t.Errorf("zero record converted to %+v", p)
	}
	if p.Colors == nil || p.Storages == nil {
		t.Error("variant lists should be empty, not nil")
	}
	if len(p.Colors) != 0 || len(p.Storages) != 0 {
		t.Errorf("variants = %v / %v, want empty", p.Colors, p.Storages)
	}
}

func TestRecordsToProducts(t *testing.T) {
	records := []api.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	products := recordsToProducts(records)
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}
	for i, p := range products {
		if p.ID != records[i].ID {
			t.Errorf("products[%d].ID = %q, want %q", i, p.ID, records[i].ID)
		}
	}
}
