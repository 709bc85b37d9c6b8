package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nailstore-client/internal/api"
	"nailstore-client/internal/cart"
	"nailstore-client/internal/catalog"
	"nailstore-client/internal/checkout"
	"nailstore-client/internal/config"
	"nailstore-client/internal/event"
	"nailstore-client/internal/localize"
	"nailstore-client/internal/logger"
	"nailstore-client/internal/order"
	"nailstore-client/internal/payment"
	"nailstore-client/internal/session"
	"nailstore-client/internal/storage"
)

// app holds the wired services every subcommand draws from.
type app struct {
	cfg      *config.Config
	lang     localize.Language
	session  *session.Manager
	cart     *cart.Store
	catalog  *catalog.Service
	orders   *order.Service
	checkout *checkout.Service
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open state dir: %w", err)
	}

	bus := event.NewBus()

	client := api.NewClient(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Token:   session.TokenSource(store),
		Rate:    cfg.RateLimit,
		Burst:   cfg.RateBurst,
	})

	sess := session.NewManager(store, bus, client, cfg.RefreshInterval)
	cartStore := cart.NewStore(store, bus)
	if u := sess.Current().Username; u != "" {
		cartStore.SwitchUser(u)
	}

	lang := localize.ParseLanguage(cfg.Language)
	catalogSvc := catalog.NewService(client)
	orderSvc := order.NewService(client)
	paymentSvc := payment.NewService(client)
	confirmer := payment.NewProcessorConfirmer(cfg.ProcessorBaseURL, cfg.PaymentPublicKey)
	checkoutSvc := checkout.NewService(cartStore, orderSvc, catalogSvc, paymentSvc, confirmer, lang)

	a := &app{
		cfg:      cfg,
		lang:     lang,
		session:  sess,
		cart:     cartStore,
		catalog:  catalogSvc,
		orders:   orderSvc,
		checkout: checkoutSvc,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(args) == 0 {
		usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.cmdProducts(ctx, rest)
	case "product":
		return a.cmdProduct(ctx, rest)
	case "add":
		return a.cmdAdd(ctx, rest)
	case "cart":
		return a.cmdCart(rest)
	case "remove":
		return a.cmdRemove(rest)
	case "qty":
		return a.cmdQty(rest)
	case "login":
		return a.cmdLogin(ctx, rest)
	case "register":
		return a.cmdRegister(ctx, rest)
	case "logout":
		a.session.Logout()
		return nil
	case "whoami":
		return a.cmdWhoami(rest)
	case "orders":
		return a.cmdOrders(ctx, rest)
	case "checkout":
		return a.cmdCheckout(ctx, rest)
	case "admin":
		return a.cmdAdmin(ctx, rest)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: storefront <command> [flags]

Shopping
  products              list the product catalog
  product <id>          show one product
  add <id> [-qty n]     add a product to the cart
  cart                  show the cart
  remove <id>           remove a cart line
  qty <id> <delta>      adjust a line quantity (never below 1)
  checkout              submit the cart (see checkout -h)

Account
  register -user ... -email ... -pass ...
  login -user ... -pass ...
  logout
  whoami
  orders                your order history

Admin
  admin products [-q ...] [-category ...] [-sort ...] [-page n]
  admin orders   [-q ...] [-status ...] [-from ...] [-to ...] [-sort ...] [-page n]
`)
}
