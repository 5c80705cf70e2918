package shop

import "github.com/JvrTrvjn/mobile-shop-app/internal/api"

// Product is a catalog entry with its upstream quirks already resolved:
// prices are numbers, spec fields that the API serves as string-or-array
// are plain slices, and variant lists are never nil.
type Product struct {
	ID       string
	Brand    string
	Model    string
	Price    float64
	ImageURL string

	CPU             string
	RAM             string
	OS              string
	DisplaySize     string
	Battery         string
	PrimaryCamera   []string
	SecondaryCamera []string
	Dimensions      string
	Weight          string
	InternalMemory  []string

	Colors   []Variant
	Storages []Variant
}

// Variant is a selectable color or storage option.
type Variant struct {
	Code int
	Name string
}

// recordToProduct converts a wire record to the public Product type.
func recordToProduct(r api.Product) Product {
	return Product{
		ID:              r.ID,
		Brand:           r.Brand,
		Model:           r.Model,
		Price:           float64(r.Price),
		ImageURL:        r.ImgURL,
		CPU:             r.CPU,
		RAM:             r.RAM.First(),
		OS:              r.OS,
		DisplaySize:     r.DisplaySize,
		Battery:         r.Battery,
		PrimaryCamera:   r.PrimaryCamera,
		SecondaryCamera: r.SecondaryCamera,
		Dimensions:      r.Dimensions,
		Weight:          r.Weight,
		InternalMemory:  r.InternalMemory,
		Colors:          recordToVariants(r.Options.Colors),
		Storages:        recordToVariants(r.Options.Storages),
	}
}

func recordToVariants(vs []api.Variant) []Variant {
	variants := make([]Variant, len(vs))
	for i, v := range vs {
		variants[i] = Variant{Code: v.Code, Name: v.Name}
	}
	return variants
}

func recordsToProducts(rs []api.Product) []Product {
	products := make([]Product, len(rs))
	for i, r := range rs {
		products[i] = recordToProduct(r)
	}
	return products
}
