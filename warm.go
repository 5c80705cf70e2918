package shop

import (
	"context"
	"fmt"
	"time"
)

// Progress tracks cache warm progress.
type Progress struct {
	Phase         string // "listing", "products", "done", "error"
	ProductsDone  int
	ProductsTotal int
	StartTime     time.Time
	Error         error
}

// ProgressFunc is called with progress updates while warming.
type ProgressFunc func(Progress)

// DefaultProgressFunc prints progress to stdout.
func DefaultProgressFunc(p Progress) {
	switch p.Phase {
	case "listing":
		fmt.Printf("\r[Listing] fetching catalog")
	case "products":
		fmt.Printf("\r[Products] %d / %d cached", p.ProductsDone, p.ProductsTotal)
	case "done":
		elapsed := time.Since(p.StartTime)
		fmt.Printf("\n[Done] %d products cached (%s)\n", p.ProductsDone, formatDuration(elapsed))
	case "error":
		fmt.Printf("\n[Error] %v\n", p.Error)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}

// Warm prefetches the product listing and every product detail page so
// later reads are served from the cache. progress may be nil.
//
// Warming stops at the first upstream failure: a broken connection
// would otherwise surface once per remaining product.
func (c *Catalog) Warm(ctx context.Context, progress ProgressFunc) error {
	if progress == nil {
		progress = func(Progress) {}
	}
	p := Progress{StartTime: time.Now()}

	p.Phase = "listing"
	progress(p)

	products, err := c.Products(ctx)
	if err != nil {
		p.Phase = "error"
		p.Error = err
		progress(p)
		return err
	}

	p.Phase = "products"
	p.ProductsTotal = len(products)
	progress(p)

	for _, product := range products {
		if _, err := c.Product(ctx, product.ID); err != nil {
			p.Phase = "error"
			p.Error = fmt.Errorf("warming product %s: %w", product.ID, err)
			progress(p)
			return p.Error
		}
		p.ProductsDone++
		progress(p)
	}

	p.Phase = "done"
	progress(p)
	return nil
}
