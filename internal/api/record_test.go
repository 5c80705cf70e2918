package api

import (
	"encoding/json"
	"testing"
)

func TestPrice_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Price
		wantErr bool
	}{
		{"number", `199.99`, 199.99, false},
		{"numeric string", `"189"`, 189, false},
		{"empty string", `""`, 0, false},
		{"padded string", `" 170 "`, 170, false},
		{"null", `null`, 0, false},
		{"garbage string", `"cheap"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && p != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, p, tt.want)
			}
		})
	}
}

func TestStringList_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single string", `"12 MP"`, []string{"12 MP"}},
		{"array", `["12 MP","f/1.8"]`, []string{"12 MP", "f/1.8"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := json.Unmarshal([]byte(tt.input), &l); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if len(l) != len(tt.want) {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tt.input, l, tt.want)
			}
			for i := range tt.want {
				if l[i] != tt.want[i] {
					t.Errorf("Unmarshal(%s)[%d] = %q, want %q", tt.input, i, l[i], tt.want[i])
				}
			}
		})
	}
}

func TestStringList_First(t *testing.T) {
	if got := (StringList{"a", "b"}).First(); got != "a" {
		t.Errorf("First() = %q, want %q", got, "a")
	}
	if got := (StringList)(nil).First(); got != "" {
		t.Errorf("First() of nil = %q, want empty", got)
	}
}

func TestProduct_UnmarshalLooseShape(t *testing.T) {
	// A realistic upstream payload: string price, camera as plain string,
	// internal memory as array.
	payload := `{
		"id": "ZmGrkLRPXOTpxsU4jjAcv",
		"brand": "Acer",
		"model": "Iconia Talk S",
		"price": "170",
		"imgUrl": "https://example.test/iconia.jpg",
		"primaryCamera": "13 MP",
		"secondaryCamera": ["2 MP", "f/2.8"],
		"internalMemory": ["16 GB", "32 GB"],
		"options": {
			"colors": [{"code": 1000, "name": "Black"}],
			"storages": [{"code": 64, "name": "16 GB"}]
		}
	}`

	var p Product
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if p.Price != 170 {
		t.Errorf("Price = %v, want 170", p.Price)
	}
	if p.PrimaryCamera.First() != "13 MP" {
		t.Errorf("PrimaryCamera = %v, want [13 MP]", p.PrimaryCamera)
	}
	if len(p.SecondaryCamera) != 2 {
		t.Errorf("SecondaryCamera = %v, want 2 entries", p.SecondaryCamera)
	}
	if len(p.Options.Colors) != 1 || p.Options.Colors[0].Code != 1000 {
		t.Errorf("Options.Colors = %+v, want code 1000", p.Options.Colors)
	}
}
