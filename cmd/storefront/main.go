// Command storefront is a thin terminal front-end over the client state
// model: it builds the stores, restores the session, runs one flow, and
// prints plain text. No business rules live here.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
	"github.com/petuniaboards/storefront/internal/core/service"
	"github.com/petuniaboards/storefront/internal/infrastructure/config"
	"github.com/petuniaboards/storefront/internal/infrastructure/rest"
	"github.com/petuniaboards/storefront/internal/infrastructure/storage"
	"github.com/petuniaboards/storefront/pkg/logger"
)

type app struct {
	cfg      *config.Config
	currency string
	session  *service.SessionStore
	cart     *service.CartStore
	catalog  *service.CatalogStore
	orders   *service.OrderStore
}

func newApp(ctx context.Context, cCtx *cli.Context) (*app, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "storefront",
		Pretty:  cfg.LogPretty,
	})

	creds, err := credentialStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	client := rest.NewClient(cfg.BaseURL, cfg.RequestTimeout, log)
	gateway := rest.NewGateway(client)
	session := service.NewSessionStore(gateway, creds, log)
	cart := service.NewCartStore()

	currency := cfg.Currency
	if c := cCtx.String("currency"); c != "" {
		currency = c
	}

	return &app{
		cfg:      cfg,
		currency: currency,
		session:  session,
		cart:     cart,
		catalog:  service.NewCatalogStore(gateway, session, cfg.PageSize, log),
		orders:   service.NewOrderStore(gateway, cart, session, cfg.PageSize, log),
	}, nil
}

func credentialStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, error) {
	switch cfg.Credentials.Backend {
	case "redis":
		client, err := storage.Connect(ctx, storage.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("using redis credential store")
		return storage.NewRedisStore(client), nil
	default:
		return storage.NewFileStore(cfg.Credentials.Path)
	}
}

func main() {
	cliApp := &cli.App{
		Name:  "storefront",
		Usage: "Petunia Boards storefront client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "currency", Usage: "display currency (overrides STOREFRONT_CURRENCY)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "confirm", Required: true},
				},
				Action: runRegister,
			},
			{
				Name:  "login",
				Usage: "sign in and remember the credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: runLogin,
			},
			{
				Name:   "logout",
				Usage:  "sign out and forget the stored credentials",
				Action: runLogout,
			},
			{
				Name:   "whoami",
				Usage:  "show the signed-in account",
				Action: runWhoami,
			},
			{
				Name:   "products",
				Usage:  "list the catalog",
				Action: runProducts,
			},
			{
				Name:      "product",
				Usage:     "show one product",
				ArgsUsage: "<id>",
				Action:    runProduct,
			},
			{
				Name:  "order",
				Usage: "place an order",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "item", Usage: "product to order as id:qty (repeatable)", Required: true},
				},
				Action: runOrder,
			},
			{
				Name:  "orders",
				Usage: "show order history",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "keep loading pages until the history is exhausted"},
				},
				Action: runOrders,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runRegister(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	reg := domain.Registration{
		Name:            cCtx.String("name"),
		Email:           cCtx.String("email"),
		Password:        cCtx.String("password"),
		ConfirmPassword: cCtx.String("confirm"),
	}
	if err := a.session.SignUp(ctx, reg); err != nil {
		return err
	}
	fmt.Println("account created; use `storefront login` to sign in")
	return nil
}

func runLogin(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	creds := domain.Credentials{
		Email:    cCtx.String("email"),
		Password: cCtx.String("password"),
	}
	if err := a.session.SignIn(ctx, creds); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", a.session.User().Name)
	return nil
}

func runLogout(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func runWhoami(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	a.session.Bootstrap(ctx)
	user := a.session.User()
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>", user.Name, user.Email)
	if user.IsAdmin() {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	return nil
}

func runProducts(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	if err := a.catalog.Refresh(ctx, a.currency); err != nil {
		return err
	}
	products := a.catalog.Products()
	if len(products) == 0 {
		fmt.Println("no products available")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%4d  %-30s %-20s %8.2f %s\n", p.ID, p.Description, p.Brand+" "+p.Model, p.ConvertedPrice, a.currency)
	}
	return nil
}

func runProduct(cCtx *cli.Context) error {
	ctx := cCtx.Context
	id, err := strconv.ParseInt(cCtx.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("usage: storefront product <id>")
	}
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	p, err := a.catalog.Get(ctx, id, a.currency)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\nbrand: %s\nmodel: %s\nprice: %.2f %s (%.2f %s)\nstock: %d\n",
		p.ID, p.Description, p.Brand, p.Model, p.ConvertedPrice, a.currency, p.Price, p.Currency, p.Stock)
	return nil
}

func runOrder(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	a.session.Bootstrap(ctx)

	for _, raw := range cCtx.StringSlice("item") {
		id, qty, err := parseItem(raw)
		if err != nil {
			return err
		}
		product, err := a.catalog.Get(ctx, id, a.currency)
		if err != nil {
			return err
		}
		a.cart.Add(*product, qty)
	}

	fmt.Printf("cart: %d item(s), total %.2f %s\n", a.cart.Count(), a.cart.ConvertedTotal(), a.currency)

	order, err := a.orders.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d placed: %d line(s), total %.2f\n", order.ID, len(order.Items), order.TotalConvertedPrice)
	return nil
}

// parseItem splits an "id:qty" pair; a bare id means quantity 1.
func parseItem(raw string) (int64, int, error) {
	idPart, qtyPart, found := strings.Cut(raw, ":")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item %q: want id:qty", raw)
	}
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(qtyPart)
	if err != nil || qty < 1 {
		return 0, 0, fmt.Errorf("invalid item %q: want id:qty", raw)
	}
	return id, qty, nil
}

func runOrders(cCtx *cli.Context) error {
	ctx := cCtx.Context
	a, err := newApp(ctx, cCtx)
	if err != nil {
		return err
	}
	a.session.Bootstrap(ctx)

	if err := a.orders.Refresh(ctx, a.currency); err != nil {
		return err
	}
	if cCtx.Bool("all") {
		for a.orders.HasMore() {
			if err := a.orders.LoadMore(ctx, a.currency); err != nil {
				return err
			}
		}
	}

	orders := a.orders.Orders()
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("order #%d  %s  %d item(s)  total %.2f %s\n",
			o.ID, o.OrderDate.Format("2006-01-02"), len(o.Items), o.TotalConvertedPrice, a.currency)
	}
	return nil
}
