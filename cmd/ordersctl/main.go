// Command ordersctl runs administrative tasks against the order store:
//
//	ordersctl claimable [-limit 50]
//	ordersctl stats -vendor <uuid>
//	ordersctl purge -older-than 720h
//	ordersctl register -role vendor -id <uuid> -name "Corner Cafe"
//	ordersctl token -role delivery_partner -id <uuid> [-ttl 24h]
//
// It reads the same environment as the API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"supplyhub/cmd"
	httpin "supplyhub/internal/adapters/in/http"
	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

const usage = `usage: ordersctl <command> [flags]

commands:
  claimable   list orders ready for pickup
  stats       show order statistics of a vendor
  purge       delete delivered and cancelled orders older than a retention
  register    create an actor profile
  token       sign an access token for an actor`

var errUsage = errors.New(usage)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	name, rest := args[0], args[1:]
	switch name {
	case "claimable":
		return claimable(ctx, rest, out)
	case "stats":
		return stats(ctx, rest, out)
	case "purge":
		return purge(ctx, rest, out)
	case "register":
		return register(ctx, rest, out)
	case "token":
		return token(rest, out)
	default:
		return fmt.Errorf("unknown command %q\n%w", name, errUsage)
	}
}

func openRoot() (*cmd.CompositionRoot, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return nil, err
	}
	// One-shot commands have no subscribers to feed.
	cfg.ChangeFeedEnabled = false

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return cmd.NewCompositionRoot(cfg, db, zap.NewNop())
}

func claimable(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("claimable", flag.ContinueOnError)
	limit := fs.Int("limit", 50, "maximum number of orders")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query, err := queries.NewListClaimableOrdersQuery(*limit)
	if err != nil {
		return err
	}

	root, err := openRoot()
	if err != nil {
		return err
	}
	defer root.Close()

	orders, err := root.CreateListClaimableOrdersQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}
	return renderSummaries(out, orders)
}

func stats(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	vendor := fs.String("vendor", "", "vendor id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	vendorID, err := kernel.UUIDFromString(*vendor)
	if err != nil {
		return fmt.Errorf("-vendor: %w", err)
	}
	query, err := queries.NewGetVendorOrderStatsQuery(vendorID)
	if err != nil {
		return err
	}

	root, err := openRoot()
	if err != nil {
		return err
	}
	defer root.Close()

	result, err := root.CreateGetVendorOrderStatsQueryHandler().Handle(ctx, query)
	if err != nil {
		return err
	}
	return renderStats(out, result)
}

func purge(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("purge", flag.ContinueOnError)
	olderThan := fs.Duration("older-than", 0, "retention of terminal orders, e.g. 720h")
	if err := fs.Parse(args); err != nil {
		return err
	}

	command, err := commands.NewPurgeTerminalOrdersCommand(*olderThan)
	if err != nil {
		return fmt.Errorf("-older-than: %w", err)
	}

	root, err := openRoot()
	if err != nil {
		return err
	}
	defer root.Close()

	deleted, err := root.CreatePurgeTerminalOrdersCommandHandler().Handle(ctx, command)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "deleted %d terminal orders older than %s\n", deleted, *olderThan)
	return err
}

func register(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	roleFlag := fs.String("role", "", "vendor, supplier or delivery_partner")
	idFlag := fs.String("id", "", "actor id, generated when empty")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := actor.ParseRole(*roleFlag)
	if err != nil {
		return fmt.Errorf("-role: %w", err)
	}
	id := kernel.NewUUID()
	if *idFlag != "" {
		if id, err = kernel.UUIDFromString(*idFlag); err != nil {
			return fmt.Errorf("-id: %w", err)
		}
	}

	root, err := openRoot()
	if err != nil {
		return err
	}
	defer root.Close()

	if err := root.Directory().Register(ctx, role, id, *name); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "registered %s %s\n", role, id)
	return err
}

func token(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	roleFlag := fs.String("role", "", "vendor, supplier or delivery_partner")
	idFlag := fs.String("id", "", "actor id")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role, err := actor.ParseRole(*roleFlag)
	if err != nil {
		return fmt.Errorf("-role: %w", err)
	}
	id, err := kernel.UUIDFromString(*idFlag)
	if err != nil {
		return fmt.Errorf("-id: %w", err)
	}
	who, err := actor.NewActor(id, role)
	if err != nil {
		return err
	}

	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	signed, err := httpin.NewAuthenticator(cfg.JWTSecret).SignToken(who, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, signed)
	return err
}
