// Package seed loads a starter catalog (categories, products, admin
// accounts) from a YAML file into the data service.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"shopfront/internal/admin"
	"shopfront/internal/category"
	"shopfront/internal/logger"
	"shopfront/internal/product"
	"shopfront/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type File struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
	Admins     []Admin    `yaml:"admins"`
}

type Category struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type Product struct {
	Title         string  `yaml:"title"`
	Price         string  `yaml:"price"`
	OriginalPrice string  `yaml:"original_price"`
	Discount      *int    `yaml:"discount"`
	Image         string  `yaml:"image"`
	Rating        float64 `yaml:"rating"`
	Sold          int     `yaml:"sold"`
	Category      string  `yaml:"category"`
	FlashDeal     bool    `yaml:"flash_deal"`
	FreeShipping  *bool   `yaml:"free_shipping"`
}

type Admin struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// ToInput converts the YAML record. Free shipping defaults to true and the
// category may be given by name or id.
func (p Product) ToInput() (product.NewProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		return product.NewProductInput{}, fmt.Errorf("product %q: invalid price %q", p.Title, p.Price)
	}

	in := product.NewProductInput{
		Title:        strings.TrimSpace(p.Title),
		Price:        price,
		Discount:     p.Discount,
		Image:        strings.TrimSpace(p.Image),
		Rating:       p.Rating,
		Sold:         p.Sold,
		IsFlashDeal:  p.FlashDeal,
		FreeShipping: p.FreeShipping == nil || *p.FreeShipping,
	}

	if p.OriginalPrice != "" {
		orig, err := decimal.NewFromString(strings.TrimSpace(p.OriginalPrice))
		if err != nil {
			return product.NewProductInput{}, fmt.Errorf("product %q: invalid original_price %q", p.Title, p.OriginalPrice)
		}
		in.OriginalPrice = &orig
	}

	if slug := utils.Slugify(p.Category); slug != "" {
		in.CategoryID = &slug
	}
	return in, nil
}

func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

type CategoryCreator interface {
	Create(ctx context.Context, name, icon string) (category.Category, error)
}

type ProductCreator interface {
	Create(ctx context.Context, input product.NewProductInput) (product.Product, error)
}

type AdminCreator interface {
	CreateAdmin(ctx context.Context, email, name, password string, role admin.Role) (admin.User, error)
}

type Loader struct {
	Categories CategoryCreator
	Products   ProductCreator
	Admins     AdminCreator
}

type Result struct {
	Categories int
	Products   int
	Admins     int
	Skipped    int
}

// Load writes f. Categories and admins that already exist are skipped so a
// seed can be re-run; any other failure stops the load.
func (l Loader) Load(ctx context.Context, f *File) (Result, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "seed"))
	var res Result

	for _, c := range f.Categories {
		_, err := l.Categories.Create(ctx, c.Name, c.Icon)
		switch {
		case errors.Is(err, category.ErrCategoryExists):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("seed category %q: %w", c.Name, err)
		default:
			res.Categories++
		}
	}

	for _, p := range f.Products {
		in, err := p.ToInput()
		if err != nil {
			return res, err
		}
		if _, err := l.Products.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Title, err)
		}
		res.Products++
	}

	if l.Admins != nil {
		for _, a := range f.Admins {
			_, err := l.Admins.CreateAdmin(ctx, a.Email, a.Name, a.Password, admin.Role(a.Role))
			switch {
			case errors.Is(err, admin.ErrEmailExists):
				res.Skipped++
			case err != nil:
				return res, fmt.Errorf("seed admin %q: %w", a.Email, err)
			default:
				res.Admins++
			}
		}
	}

	log.Info("seed complete",
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products),
		zap.Int("admins", res.Admins),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}
