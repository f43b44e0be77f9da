package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"shopfront/internal/catalog"
	"shopfront/internal/category"
	"shopfront/internal/format"
	"shopfront/internal/logger"
	"shopfront/internal/product"
	"shopfront/internal/review"
	"shopfront/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errProductNotFound = errors.New("product not found")

// page is everything the home screen needs.
type page struct {
	products   []product.Product
	flashDeals []product.Product
	categories []category.Category
}

// loadPage fetches the catalog and categories concurrently and splits the
// catalog into flash deals and standard products. The fetches never fail;
// an unreachable data service shows up as empty lists.
func (a *app) loadPage(ctx context.Context) page {
	var (
		p   page
		all []product.Product
		g   errgroup.Group
	)
	g.Go(func() error {
		all = a.products.FetchAll(ctx)
		return nil
	})
	g.Go(func() error {
		p.categories = a.categories.FetchCategories(ctx)
		return nil
	})
	_ = g.Wait()

	p.flashDeals, p.products = catalog.PartitionFlashDeals(all)
	return p
}

func parseSort(raw string) (catalog.SortKey, error) {
	if raw == "" {
		return catalog.SortRecommended, nil
	}
	key, ok := catalog.ParseSortKey(raw)
	if !ok {
		keys := make([]string, 0, len(catalog.SortKeys()))
		for _, k := range catalog.SortKeys() {
			keys = append(keys, string(k))
		}
		return "", fmt.Errorf("%w: unknown sort %q (use %s)", errUsage, raw, strings.Join(keys, ", "))
	}
	return key, nil
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid price %q", errUsage, raw)
	}
	return &d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sortFlag() cli.Flag {
	return &cli.StringFlag{Name: "sort", Usage: "recommended, price-ascending, price-descending, rating-descending, popularity-descending or newest (short forms price-low, price-high, rating, popular)"}
}

func (a *app) browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "home page or a category page",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Value: catalog.AllCategories, Usage: "category id, or all"},
			sortFlag(),
			&cli.StringFlag{Name: "min", Usage: "minimum price"},
			&cli.StringFlag{Name: "max", Usage: "maximum price"},
			&cli.FloatFlag{Name: "rating", Usage: "minimum rating"},
			&cli.BoolFlag{Name: "free", Usage: "free shipping only"},
			&cli.StringFlag{Name: "in", Usage: "comma separated category ids"},
			&cli.BoolFlag{Name: "hide-deals", Usage: "standard products only"},
		},
		Action: a.browse,
	}
}

func (a *app) browse(ctx context.Context, cmd *cli.Command) error {
	params := catalog.DefaultViewParameters()
	params.Category = strings.TrimSpace(cmd.String("category"))

	var err error
	if params.Sort, err = parseSort(cmd.String("sort")); err != nil {
		return err
	}
	if params.Filter.PriceMin, err = parsePrice(cmd.String("min")); err != nil {
		return err
	}
	if params.Filter.PriceMax, err = parsePrice(cmd.String("max")); err != nil {
		return err
	}
	params.Filter.MinRating = float64(cmd.Float("rating"))
	params.Filter.FreeShippingOnly = cmd.Bool("free")
	params.Filter.Categories = splitList(cmd.String("in"))

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cli"),
		zap.String("method", "browse"),
		zap.String("category", params.Category),
		zap.String("sort", string(params.Sort)),
	)

	if params.Category != "" && params.Category != catalog.AllCategories {
		products := a.products.FetchProductsByCategory(ctx, params.Category)
		view := catalog.Derive(products, params)
		log.Debug("category page", zap.Int("fetched", len(products)), zap.Int("shown", len(view)))

		fmt.Fprintf(a.out, "Category: %s (%d products)\n\n", params.Category, len(view))
		a.printProducts(view)
		return nil
	}

	if cmd.Bool("hide-deals") {
		view := catalog.Derive(a.products.FetchProducts(ctx), params)
		log.Debug("standard products", zap.Int("shown", len(view)))

		fmt.Fprintf(a.out, "Products (%d)\n", len(view))
		a.printProducts(view)
		return nil
	}

	p := a.loadPage(ctx)
	view := catalog.Derive(p.products, params)
	log.Debug("home page",
		zap.Int("products", len(p.products)),
		zap.Int("flash_deals", len(p.flashDeals)),
		zap.Int("categories", len(p.categories)),
		zap.Int("shown", len(view)),
	)

	if len(p.categories) > 0 {
		names := make([]string, 0, len(p.categories))
		for _, c := range p.categories {
			names = append(names, strings.TrimSpace(c.Icon+" "+c.Name)+" ("+c.ID+")")
		}
		fmt.Fprintf(a.out, "Categories: %s\n\n", strings.Join(names, ", "))
	}

	if len(p.flashDeals) > 0 {
		fmt.Fprintf(a.out, "Flash deals (%d)\n", len(p.flashDeals))
		a.printProducts(catalog.SortProducts(p.flashDeals, params.Sort))
		fmt.Fprintln(a.out)
	}

	fmt.Fprintf(a.out, "Products (%d)\n", len(view))
	a.printProducts(view)
	return nil
}

func (a *app) dealsCommand() *cli.Command {
	return &cli.Command{
		Name:  "deals",
		Usage: "flash deals",
		Flags: []cli.Flag{sortFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key, err := parseSort(cmd.String("sort"))
			if err != nil {
				return err
			}

			deals := catalog.SortProducts(a.products.FetchFlashDeals(ctx), key)
			fmt.Fprintf(a.out, "Flash deals (%d)\n", len(deals))
			a.printProducts(deals)
			return nil
		},
	}
}

func (a *app) productCommand() *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "product details and reviews",
		ArgsUsage: "<id>",
		Action:    a.showProduct,
	}
}

func (a *app) showProduct(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: product <id>", errUsage)
	}
	id, err := utils.ParseID(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var (
		p       *product.Product
		reviews []review.Review
		g       errgroup.Group
	)
	g.Go(func() error {
		p = a.products.FetchProductByID(ctx, id)
		return nil
	})
	g.Go(func() error {
		reviews = a.reviews.FetchReviewsByProduct(ctx, id)
		return nil
	})
	_ = g.Wait()

	if p == nil {
		return fmt.Errorf("%w: %d", errProductNotFound, id)
	}

	fmt.Fprintf(a.out, "%s\n", p.Title)
	fmt.Fprintf(a.out, "  Price:    %s", a.money.Price(p.Price))
	if p.OriginalPrice != nil {
		fmt.Fprintf(a.out, " (was %s)", a.money.Price(*p.OriginalPrice))
	}
	if p.Discount != nil {
		fmt.Fprintf(a.out, " %s", format.Discount(*p.Discount))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "  Rating:   %.1f  %s\n", p.Rating, format.Sold(p.Sold))
	fmt.Fprintf(a.out, "  Category: %s\n", utils.PtrString(p.CategoryID))
	fmt.Fprintf(a.out, "  Shipping: %s\n", shippingLabel(*p))
	if p.IsFlashDeal {
		fmt.Fprintln(a.out, "  Flash deal")
	}

	summary := review.Summarize(reviews)
	fmt.Fprintf(a.out, "\nReviews (%d, average %.1f)\n", summary.Count, summary.Average)
	for stars := review.MaxRating; stars >= review.MinRating; stars-- {
		fmt.Fprintf(a.out, "  %d★ %d\n", stars, summary.Distribution[stars-1])
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "\n  %s  %d★  %s\n", r.UserName, r.Rating, r.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(a.out, "  %s\n", r.Comment)
		if r.HelpfulCount > 0 {
			fmt.Fprintf(a.out, "  %d found this helpful\n", r.HelpfulCount)
		}
	}
	return nil
}

func shippingLabel(p product.Product) string {
	if p.FreeShipping {
		return "free"
	}
	return "paid"
}

func (a *app) printProducts(products []product.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "  (no products)")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tWAS\tOFF\tRATING\tSOLD\tSHIPPING")
	for _, p := range products {
		was, off := "", ""
		if p.OriginalPrice != nil {
			was = a.money.Price(*p.OriginalPrice)
		}
		if p.Discount != nil {
			off = format.Discount(*p.Discount)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%s\t%s\n",
			p.ID, p.Title, a.money.Price(p.Price), was, off, p.Rating, format.Sold(p.Sold), shippingLabel(p))
	}
	_ = w.Flush()
}
