package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"shopfront/internal/admin"
	"shopfront/internal/logger"
	"shopfront/internal/order"
	"shopfront/internal/product"
	"shopfront/internal/utils"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var errForbidden = errors.New("this action needs a super admin")

type sessionAction func(ctx context.Context, cmd *cli.Command, session *admin.Session) error

// signedIn runs next only when a valid admin session is stored.
func (a *app) signedIn(next sessionAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		session, err := a.admins.Restore(ctx)
		if err != nil {
			return err
		}

		logger.FromCtx(ctx).Debug("admin command",
			zap.String("command", cmd.Name),
			zap.Int64("admin_id", session.AdminID),
			zap.String("role", string(session.Role)),
		)
		return next(ctx, cmd, session)
	}
}

func (a *app) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "back office",
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			if a.admins == nil {
				return ctx, a.adminErr
			}
			return ctx, nil
		},
		Action: func(context.Context, *cli.Command) error {
			return fmt.Errorf("%w: admin <command>", errUsage)
		},
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: a.adminLogin,
			},
			{
				Name:  "logout",
				Usage: "sign out",
				Action: func(ctx context.Context, _ *cli.Command) error {
					if err := a.admins.Logout(ctx); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Signed out")
					return nil
				},
			},
			{
				Name:   "dashboard",
				Usage:  "store totals",
				Action: a.signedIn(a.showDashboard),
			},
			{
				Name:  "orders",
				Usage: "all orders, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "only orders in this status"},
				},
				Action: a.signedIn(a.adminOrders),
			},
			{
				Name:  "order-status",
				Usage: "move an order to a new status",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "order id"},
					&cli.StringFlag{Name: "status", Required: true},
				},
				Action: a.signedIn(a.setOrderStatus),
			},
			{
				Name:   "add-product",
				Usage:  "create a product",
				Flags:  append(productFlags(), &cli.BoolFlag{Name: "flash", Usage: "list as a flash deal"}),
				Action: a.signedIn(a.addProduct),
			},
			{
				Name:   "update-product",
				Usage:  "change the given fields of a product",
				Flags:  append(productFlags(), &cli.IntFlag{Name: "id", Required: true}),
				Action: a.signedIn(a.updateProduct),
			},
			{
				Name:   "delete-product",
				Usage:  "delete a product",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "id", Required: true}},
				Action: a.signedIn(a.deleteProduct),
			},
			{
				Name:  "flash",
				Usage: "put a product on or off flash deals",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "off", Usage: "remove from flash deals"},
				},
				Action: a.signedIn(a.setFlashDeal),
			},
			{
				Name:  "add-category",
				Usage: "create a category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "icon"},
				},
				Action: a.signedIn(a.addCategory),
			},
			{
				Name:   "delete-category",
				Usage:  "delete a category",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "id", Required: true}},
				Action: a.signedIn(a.deleteCategory),
			},
			{
				Name:  "add-admin",
				Usage: "create a back office account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "role", Value: string(admin.RoleAdmin), Usage: "admin or super_admin"},
				},
				Action: a.signedIn(a.addAdmin),
			},
		},
	}
}

func (a *app) adminLogin(ctx context.Context, cmd *cli.Command) error {
	session, err := a.admins.Login(ctx, cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s) until %s\n",
		session.Name, session.Role, session.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *app) showDashboard(ctx context.Context, _ *cli.Command, _ *admin.Session) error {
	stats, err := a.dashboard.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Products:    %d\n", stats.TotalProducts)
	fmt.Fprintf(a.out, "Categories:  %d\n", stats.TotalCategories)
	fmt.Fprintf(a.out, "Orders:      %d\n", stats.TotalOrders)
	fmt.Fprintf(a.out, "Revenue:     %s\n", a.money.Price(stats.TotalRevenue))
	fmt.Fprintf(a.out, "Avg order:   %s\n", a.money.Price(stats.AverageOrderValue()))
	fmt.Fprintf(a.out, "Customers:   %d\n", stats.TotalCustomers)
	for _, st := range order.Statuses() {
		fmt.Fprintf(a.out, "  %-11s %d\n", st, stats.OrdersByStatus[st])
	}
	return nil
}

func (a *app) adminOrders(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	var status *order.Status
	if raw := cmd.String("status"); raw != "" {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = &st
	}

	orders, err := a.orders.ListAll(ctx, status)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders")
		return nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tCUSTOMER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.UserID, o.Status, a.money.Price(o.Total), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *app) setOrderStatus(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	raw := strings.TrimSpace(cmd.String("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid order id %q", errUsage, raw)
	}
	status, err := order.ParseStatus(cmd.String("status"))
	if err != nil {
		return err
	}

	updated, err := a.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", updated.ID, updated.Status)
	return nil
}

// productFlags are shared by add-product and update-product.
func productFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "price"},
		&cli.StringFlag{Name: "original", Usage: "original price before discount"},
		&cli.IntFlag{Name: "discount", Usage: "discount percent"},
		&cli.StringFlag{Name: "image", Usage: "image url"},
		&cli.FloatFlag{Name: "rating"},
		&cli.IntFlag{Name: "sold", Usage: "units sold"},
		&cli.StringFlag{Name: "category", Usage: "category id or name"},
		&cli.BoolFlag{Name: "free", Value: true, Usage: "free shipping"},
	}
}

func (a *app) addProduct(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	price, err := parsePrice(cmd.String("price"))
	if err != nil {
		return err
	}
	if price == nil {
		return fmt.Errorf("%w: -price is required", errUsage)
	}
	original, err := parsePrice(cmd.String("original"))
	if err != nil {
		return err
	}

	in := product.NewProductInput{
		Title:         strings.TrimSpace(cmd.String("title")),
		Price:         *price,
		OriginalPrice: original,
		Image:         strings.TrimSpace(cmd.String("image")),
		Rating:        float64(cmd.Float("rating")),
		Sold:          int(cmd.Int("sold")),
		IsFlashDeal:   cmd.Bool("flash"),
		FreeShipping:  cmd.Bool("free"),
	}
	if cmd.IsSet("discount") {
		in.Discount = utils.IntPtr(int(cmd.Int("discount")))
	}
	if c := strings.TrimSpace(cmd.String("category")); c != "" {
		in.CategoryID = utils.StrPtr(utils.Slugify(c))
	}

	p, err := a.products.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created product %d: %s at %s\n", p.ID, p.Title, a.money.Price(p.Price))
	return nil
}

func (a *app) updateProduct(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	in := product.UpdateProductInput{ID: int64(cmd.Int("id"))}
	if cmd.IsSet("title") {
		in.Title = utils.StrPtr(strings.TrimSpace(cmd.String("title")))
	}
	if cmd.IsSet("price") {
		price, err := parsePrice(cmd.String("price"))
		if err != nil {
			return err
		}
		in.Price = price
	}
	if cmd.IsSet("original") {
		original, err := parsePrice(cmd.String("original"))
		if err != nil {
			return err
		}
		in.OriginalPrice = original
	}
	if cmd.IsSet("discount") {
		in.Discount = utils.IntPtr(int(cmd.Int("discount")))
	}
	if cmd.IsSet("image") {
		in.Image = utils.StrPtr(strings.TrimSpace(cmd.String("image")))
	}
	if cmd.IsSet("category") {
		in.CategoryID = utils.StrPtr(utils.Slugify(cmd.String("category")))
	}
	if cmd.IsSet("free") {
		free := cmd.Bool("free")
		in.FreeShipping = &free
	}

	p, err := a.products.Update(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated product %d: %s at %s\n", p.ID, p.Title, a.money.Price(p.Price))
	return nil
}

func (a *app) deleteProduct(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	id := int64(cmd.Int("id"))
	if err := a.products.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted product %d\n", id)
	return nil
}

func (a *app) setFlashDeal(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	id := int64(cmd.Int("id"))
	off := cmd.Bool("off")
	if err := a.products.SetFlashDeal(ctx, id, !off); err != nil {
		return err
	}
	if off {
		fmt.Fprintf(a.out, "Product %d removed from flash deals\n", id)
	} else {
		fmt.Fprintf(a.out, "Product %d is now a flash deal\n", id)
	}
	return nil
}

func (a *app) addCategory(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	c, err := a.categories.Create(ctx, cmd.String("name"), cmd.String("icon"))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created category %s (%s)\n", c.Name, c.ID)
	return nil
}

func (a *app) deleteCategory(ctx context.Context, cmd *cli.Command, _ *admin.Session) error {
	id := cmd.String("id")
	if err := a.categories.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted category %s\n", id)
	return nil
}

func (a *app) addAdmin(ctx context.Context, cmd *cli.Command, session *admin.Session) error {
	if session.Role != admin.RoleSuperAdmin {
		return errForbidden
	}

	role := admin.Role(strings.TrimSpace(cmd.String("role")))
	if role != admin.RoleAdmin && role != admin.RoleSuperAdmin {
		return fmt.Errorf("%w: unknown role %q", errUsage, role)
	}

	u, err := a.admins.CreateAdmin(ctx, cmd.String("email"), cmd.String("name"), cmd.String("password"), role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s %s\n", u.Role, u.Email)

	users, err := a.admins.List(ctx)
	if err != nil {
		return err
	}
	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	sort.Strings(emails)
	fmt.Fprintf(a.out, "Admins: %s\n", strings.Join(emails, ", "))
	return nil
}
