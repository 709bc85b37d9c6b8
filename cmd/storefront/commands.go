package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"time"

	"nailstore-client/internal/adminview"
	"nailstore-client/internal/cart"
	"nailstore-client/internal/checkout"
	"nailstore-client/internal/localize"
	"nailstore-client/internal/order"
	"nailstore-client/internal/payment"
)

var errLoginRequired = errors.New("you must be logged in (run: storefront login)")

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		price := localize.FormatPrice(p.EffectivePrice(), a.lang)
		fmt.Printf("%-24s  %-30s  %10s  stock %d\n",
			p.ID, p.Name.Resolve(a.lang), price, p.Quantity)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storefront product <id>")
	}

	p, err := a.catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(p.Name.Resolve(a.lang))
	if d := p.Description.Resolve(a.lang); d != "" {
		fmt.Println(d)
	}
	fmt.Println("price:   ", localize.FormatPrice(p.EffectivePrice(), a.lang))
	if p.DiscountPct.IsPositive() {
		fmt.Printf("was:      %s (-%s%%)\n", localize.FormatPrice(p.Price, a.lang), p.DiscountPct)
	}
	fmt.Println("category:", p.Category.Resolve(a.lang))
	fmt.Println("stock:   ", p.Quantity)
	fmt.Println("sold:    ", p.Sold)
	return nil
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	qty := fs.Int("qty", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: storefront add <id> [-qty n]")
	}

	p, err := a.catalog.Get(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !p.InStock(*qty) {
		return fmt.Errorf("%s: only %d in stock", p.Name.Resolve(a.lang), p.Quantity)
	}

	line := cart.Line{
		ProductID:     p.ID,
		Name:          p.Name,
		UnitPrice:     p.EffectivePrice(),
		ImageURL:      p.Image,
		CategoryLabel: p.Category,
	}
	if err := a.cart.AddToCart(line, *qty); err != nil {
		return err
	}

	fmt.Printf("added %d × %s\n", *qty, p.Name.Resolve(a.lang))
	return nil
}

func (a *app) cmdCart(args []string) error {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	for _, l := range lines {
		fmt.Printf("%-24s  %-30s  ×%-3d  %10s\n",
			l.ProductID, l.Name.Resolve(a.lang), l.Quantity,
			localize.FormatPrice(l.LineTotal(), a.lang))
	}
	fmt.Printf("%d items, subtotal %s\n", a.cart.TotalItems(), a.cart.FormatSubtotal(a.lang))
	return nil
}

func (a *app) cmdRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: storefront remove <id>")
	}
	a.cart.RemoveFromCart(args[0])
	return a.cmdCart(nil)
}

func (a *app) cmdQty(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: storefront qty <id> <delta>")
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be an integer: %q", args[1])
	}
	a.cart.UpdateQuantity(args[0], delta)
	return a.cmdCart(nil)
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	user := fs.String("user", "", "username")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *pass == "" {
		return errors.New("usage: storefront login -user <name> -pass <password>")
	}

	if err := a.session.Login(ctx, *user, *pass); err != nil {
		return err
	}
	fmt.Println("logged in as", *user)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	user := fs.String("user", "", "username")
	email := fs.String("email", "", "email address")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *email == "" || *pass == "" {
		return errors.New("usage: storefront register -user <name> -email <address> -pass <password>")
	}

	if err := a.session.Register(ctx, *user, *email, *pass); err != nil {
		return err
	}
	fmt.Println("registered and logged in as", *user)
	return nil
}

func (a *app) cmdWhoami(args []string) error {
	cur := a.session.Current()
	if cur.Username == "" {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Println("user:", cur.Username)
	fmt.Println("role:", cur.Role)
	if a.session.IsAdmin() {
		fmt.Println("admin access: yes")
	}
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	a.session.Refresh(ctx)
	cur := a.session.Current()
	if cur.Username == "" {
		return errLoginRequired
	}

	orders, err := a.orders.ListByUser(ctx, cur.Username)
	if err != nil {
		return err
	}
	printOrders(orders, a.lang)
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	delivery := fs.String("delivery", "ship", "delivery method: ship or pickup")
	payMethod := fs.String("payment", "card", "payment method: card or store")
	email := fs.String("email", "", "email address")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	zip := fs.String("zip", "", "zip code")
	phone := fs.String("phone", "", "phone number (optional)")
	cardToken := fs.String("card-token", "", "tokenized card from the payment widget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.session.Refresh(ctx)

	draft := checkout.NewDraft()
	switch *delivery {
	case "ship":
		draft.SetDeliveryMethod(checkout.DeliveryShip)
	case "pickup":
		draft.SetDeliveryMethod(checkout.DeliveryPickup)
	default:
		return fmt.Errorf("unknown delivery method %q", *delivery)
	}
	switch *payMethod {
	case "card":
		if err := draft.SetPaymentMethod(checkout.PaymentCard); err != nil {
			return err
		}
	case "store":
		if err := draft.SetPaymentMethod(checkout.PaymentStore); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown payment method %q", *payMethod)
	}

	draft.Form = checkout.Form{
		Email:     *email,
		FirstName: *first,
		LastName:  *last,
		Address:   *address,
		City:      *city,
		Zip:       *zip,
		Phone:     *phone,
	}

	res, err := a.checkout.Submit(ctx, draft, payment.Card{Token: *cardToken})
	if err != nil {
		if errors.Is(err, checkout.ErrValidation) {
			printFieldErrors(draft.Errors())
			return err
		}
		var se *checkout.SubmitError
		if errors.As(err, &se) {
			return errors.New(se.UserMessage())
		}
		return err
	}

	if res.Fallback {
		fmt.Println("Your payment went through, but we could not record the order just now.")
		fmt.Println("Our staff will follow up by email.")
	} else {
		fmt.Println("order placed:", res.OrderID)
		fmt.Println("status:", res.Status)
	}
	for _, side := range res.SideErrs {
		fmt.Println("note:", side)
	}
	return nil
}

func printFieldErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Printf("%s: %s\n", f, errs[f])
	}
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: storefront admin products|orders [flags]")
	}

	a.session.Refresh(ctx)
	if !a.session.IsAdmin() {
		return errors.New("admin access required")
	}

	switch args[0] {
	case "products":
		return a.cmdAdminProducts(ctx, args[1:])
	case "orders":
		return a.cmdAdminOrders(ctx, args[1:])
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func (a *app) cmdAdminProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin products", flag.ContinueOnError)
	search := fs.String("q", "", "search in id and name")
	category := fs.String("category", "", "category filter")
	sortBy := fs.String("sort", "", "newest|name|price-asc|price-desc|best-selling")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	q := adminview.ProductQuery{
		Search:   *search,
		Category: *category,
		Sort:     adminview.ProductSort(*sortBy),
		Page:     *page,
	}
	res := q.Run(products)

	for _, p := range res.Items {
		fmt.Printf("%-24s  %-30s  %10s  stock %-4d  sold %d\n",
			p.ID, p.Name.Resolve(a.lang),
			localize.FormatPrice(p.EffectivePrice(), a.lang), p.Quantity, p.Sold)
	}
	printPageFooter(res.Page, res.TotalPages, res.Total, q.Values().Encode())
	return nil
}

func (a *app) cmdAdminOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin orders", flag.ContinueOnError)
	search := fs.String("q", "", "search in order id, username, email")
	status := fs.String("status", "", "pending|paid|shipped|completed|cancelled")
	fromStr := fs.String("from", "", "start date (YYYY-MM-DD, inclusive)")
	toStr := fs.String("to", "", "end date (YYYY-MM-DD, inclusive)")
	sortBy := fs.String("sort", "", "newest|oldest|total-asc|total-desc")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := adminview.OrderQuery{
		Search: *search,
		Sort:   adminview.OrderSort(*sortBy),
		Page:   *page,
	}
	if *status != "" {
		st, err := order.ParseStatus(*status)
		if err != nil {
			return err
		}
		q.Status = st
	}
	if *fromStr != "" {
		t, err := time.Parse(time.DateOnly, *fromStr)
		if err != nil {
			return fmt.Errorf("bad -from date: %w", err)
		}
		q.From = t
	}
	if *toStr != "" {
		t, err := time.Parse(time.DateOnly, *toStr)
		if err != nil {
			return fmt.Errorf("bad -to date: %w", err)
		}
		// A bare date means the whole day.
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	orders, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	res := q.Run(orders)

	printOrders(res.Items, a.lang)
	printPageFooter(res.Page, res.TotalPages, res.Total, q.Values().Encode())
	return nil
}

func printOrders(orders []order.Order, lang localize.Language) {
	for _, o := range orders {
		fmt.Printf("%-24s  %-12s  %-10s  %10s  %s\n",
			o.ID, o.Username, o.Status,
			localize.FormatPriceCents(o.TotalCents, lang),
			o.CreatedAt.Format(time.DateOnly))
	}
}

func printPageFooter(page, totalPages, total int, query string) {
	fmt.Printf("page %d of %d (%d total)", page, totalPages, total)
	if query != "" {
		fmt.Printf("  [?%s]", query)
	}
	fmt.Println()
}
