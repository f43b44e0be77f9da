package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"shopfront/internal/address"
	"shopfront/internal/cart"
	"shopfront/internal/logger"
	"shopfront/internal/order"
	"shopfront/internal/review"
	"shopfront/internal/utils"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var (
	errLineNotFound    = errors.New("no such line in the cart")
	errReviewRejected  = errors.New("review was not saved")
	errOrderNotFound   = errors.New("order not found")
	errReviewNotMarked = errors.New("review could not be marked helpful")
)

// restoreCart loads the persisted cart. A broken entry is logged and the
// command continues with an empty cart.
func (a *app) restoreCart(ctx context.Context) {
	if err := a.cart.Restore(ctx); err != nil && !errors.Is(err, cart.ErrNoPersister) {
		logger.FromCtx(ctx).Warn("starting with an empty cart", zap.Error(err))
		a.cart.Clear()
	}
}

func (a *app) saveCart(ctx context.Context) error {
	if err := a.cart.Save(ctx); err != nil && !errors.Is(err, cart.ErrNoPersister) {
		return err
	}
	return nil
}

// parseLineKey reads "id" or "id:variant".
func parseLineKey(raw string) (cart.LineKey, error) {
	idPart, variant, _ := strings.Cut(strings.TrimSpace(raw), ":")
	id, err := utils.ParseID(idPart)
	if err != nil {
		return cart.LineKey{}, fmt.Errorf("%w: invalid line %q", errUsage, raw)
	}
	return cart.LineKey{ProductID: id, Variant: strings.TrimSpace(variant)}, nil
}

func lineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "id", Usage: "product id", Required: true},
		&cli.StringFlag{Name: "variant", Usage: "variant, e.g. \"Black - M\""},
	}
}

func lineKeyFrom(cmd *cli.Command) cart.LineKey {
	return cart.LineKey{
		ProductID: int64(cmd.Int("id")),
		Variant:   strings.TrimSpace(cmd.String("variant")),
	}
}

func (a *app) cartCommand() *cli.Command {
	show := &cli.Command{
		Name:  "show",
		Usage: "list the cart with its totals",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "select", Usage: "comma separated id[:variant] lines to total"},
		},
		Action: a.showCart,
	}

	return &cli.Command{
		Name:  "cart",
		Usage: "view and edit the cart",
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			a.restoreCart(ctx)
			return ctx, nil
		},
		Action: a.showCart,
		Commands: []*cli.Command{
			show,
			{
				Name:   "add",
				Usage:  "add a product",
				Flags:  append(lineFlags(), &cli.IntFlag{Name: "qty", Value: 1, Usage: "quantity"}),
				Action: a.addToCart,
			},
			{
				Name:   "update",
				Usage:  "set a line's quantity, 0 removes it",
				Flags:  append(lineFlags(), &cli.IntFlag{Name: "qty", Value: 1, Usage: "new quantity"}),
				Action: a.updateCart,
			},
			{
				Name:   "remove",
				Usage:  "remove a line",
				Flags:  lineFlags(),
				Action: a.removeFromCart,
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(ctx context.Context, _ *cli.Command) error {
					a.cart.Clear()
					if err := a.saveCart(ctx); err != nil {
						return err
					}
					fmt.Fprintln(a.out, "Cart cleared")
					return nil
				},
			},
		},
	}
}

func (a *app) showCart(_ context.Context, cmd *cli.Command) error {
	if a.cart.IsEmpty() {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tVARIANT\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range a.cart.Lines() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			l.ProductID, l.Title, l.Variant, l.Quantity, a.money.Price(l.Price), a.money.Price(l.Subtotal()))
	}
	_ = w.Flush()

	q := a.checkout.Quote(a.cart)
	fmt.Fprintf(a.out, "\n%d items (%d units)\n", q.Lines, q.Units)
	fmt.Fprintf(a.out, "Subtotal: %s\n", a.money.Price(q.Subtotal))
	fmt.Fprintf(a.out, "Shipping: %s\n", a.money.Price(q.Shipping))
	fmt.Fprintf(a.out, "Total:    %s\n", a.money.Price(q.Total))

	if selected := cmd.String("select"); selected != "" {
		var keys []cart.LineKey
		for _, raw := range splitList(selected) {
			key, err := parseLineKey(raw)
			if err != nil {
				return err
			}
			keys = append(keys, key)
		}
		fmt.Fprintf(a.out, "Selected: %s\n", a.money.Price(a.cart.SelectedTotal(keys)))
	}
	return nil
}

func (a *app) addToCart(ctx context.Context, cmd *cli.Command) error {
	key := lineKeyFrom(cmd)
	p := a.products.FetchProductByID(ctx, key.ProductID)
	if p == nil {
		return fmt.Errorf("%w: %d", errProductNotFound, key.ProductID)
	}

	line := cart.NewLine(*p, int(cmd.Int("qty")), key.Variant)
	if err := a.cart.AddItem(line); err != nil {
		return err
	}
	if err := a.saveCart(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %d x %s (%d items in cart)\n", line.Quantity, line.Title, a.cart.Count())
	return nil
}

func (a *app) updateCart(ctx context.Context, cmd *cli.Command) error {
	key := lineKeyFrom(cmd)
	if _, ok := a.cart.Line(key); !ok {
		return errLineNotFound
	}

	a.cart.UpdateQuantity(key, int(cmd.Int("qty")))
	if err := a.saveCart(ctx); err != nil {
		return err
	}

	if l, ok := a.cart.Line(key); ok {
		fmt.Fprintf(a.out, "%s now x %d\n", l.Title, l.Quantity)
	} else {
		fmt.Fprintln(a.out, "Line removed")
	}
	return nil
}

func (a *app) removeFromCart(ctx context.Context, cmd *cli.Command) error {
	key := lineKeyFrom(cmd)
	if _, ok := a.cart.Line(key); !ok {
		return errLineNotFound
	}

	a.cart.RemoveItem(key)
	if err := a.saveCart(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed (%d items in cart)\n", a.cart.Count())
	return nil
}

func (a *app) checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "place an order for the cart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "customer id"},
			&cli.StringFlag{Name: "name", Usage: "recipient name"},
			&cli.StringFlag{Name: "address", Usage: "street address"},
			&cli.StringFlag{Name: "city"},
			&cli.StringFlag{Name: "country"},
			&cli.StringFlag{Name: "zip", Usage: "postal code"},
		},
		Action: a.placeOrder,
	}
}

func (a *app) placeOrder(ctx context.Context, cmd *cli.Command) error {
	a.restoreCart(ctx)

	ship := address.Shipping{
		Name:    cmd.String("name"),
		Address: cmd.String("address"),
		City:    cmd.String("city"),
		Country: cmd.String("country"),
		Zip:     cmd.String("zip"),
	}

	o, err := a.checkout.PlaceOrder(ctx, strings.TrimSpace(cmd.String("user")), a.cart, ship)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Order %s placed\n", o.ID)
	fmt.Fprintf(a.out, "Total: %s\n", a.money.Price(o.Total))
	fmt.Fprintf(a.out, "Ship to: %s\n", o.Shipping)
	return nil
}

func (a *app) ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "order history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "customer id"},
			&cli.StringFlag{Name: "id", Usage: "show the items of one order"},
		},
		Action: a.listOrders,
	}
}

func (a *app) listOrders(ctx context.Context, cmd *cli.Command) error {
	user := strings.TrimSpace(cmd.String("user"))
	if user == "" {
		return fmt.Errorf("%w: -user is required", errUsage)
	}

	orders := a.orders.ListOrdersByUser(ctx, user)

	if raw := strings.TrimSpace(cmd.String("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: invalid order id %q", errUsage, raw)
		}
		for _, o := range orders {
			if o.ID == id {
				a.printOrderItems(ctx, o)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", errOrderNotFound, id)
	}

	a.printOrders(orders)
	return nil
}

func (a *app) printOrders(orders []order.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.Status, a.money.Price(o.Total), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}

func (a *app) printOrderItems(ctx context.Context, o order.Order) {
	fmt.Fprintf(a.out, "Order %s (%s)\n", o.ID, o.Status)
	fmt.Fprintf(a.out, "Ship to: %s\n\n", o.Shipping)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tVARIANT\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range a.orders.ListOrderItems(ctx, o.ID) {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			it.ProductID, utils.PtrString(it.Variant), it.Quantity, a.money.Price(it.Price), a.money.Price(it.Subtotal()))
	}
	_ = w.Flush()
	fmt.Fprintf(a.out, "\nTotal: %s\n", a.money.Price(o.Total))
}

func (a *app) reviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "review a product",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "product", Usage: "product id"},
			&cli.StringFlag{Name: "user", Usage: "display name"},
			&cli.StringFlag{Name: "avatar", Usage: "avatar url"},
			&cli.IntFlag{Name: "rating", Usage: "rating from 1 to 5"},
			&cli.StringFlag{Name: "comment", Usage: "review text"},
			&cli.StringFlag{Name: "images", Usage: "comma separated image urls"},
		},
		Action: a.writeReview,
		Commands: []*cli.Command{
			{
				Name:      "helpful",
				Usage:     "mark a review as helpful",
				ArgsUsage: "<review-id>",
				Action:    a.markHelpful,
			},
		},
	}
}

func (a *app) writeReview(ctx context.Context, cmd *cli.Command) error {
	r := a.reviews.CreateReview(ctx, review.Draft{
		ProductID:  int64(cmd.Int("product")),
		UserName:   cmd.String("user"),
		UserAvatar: utils.NilIfEmpty(cmd.String("avatar")),
		Rating:     int(cmd.Int("rating")),
		Comment:    cmd.String("comment"),
		Images:     splitList(cmd.String("images")),
	})
	if r == nil {
		return errReviewRejected
	}

	fmt.Fprintf(a.out, "Review %s saved (%d★)\n", r.ID, r.Rating)
	return nil
}

func (a *app) markHelpful(ctx context.Context, cmd *cli.Command) error {
	id, err := uuid.Parse(strings.TrimSpace(cmd.Args().First()))
	if err != nil {
		return fmt.Errorf("%w: review helpful <review-id>", errUsage)
	}
	if !a.reviews.MarkHelpful(ctx, id) {
		return errReviewNotMarked
	}
	fmt.Fprintln(a.out, "Thanks for the feedback")
	return nil
}
