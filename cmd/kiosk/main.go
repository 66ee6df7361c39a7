// Command kiosk is the in-store client: it keeps a guest cart and order
// history on the local disk and, once a customer logs in, syncs that state
// into their account exactly once.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	config "github.com/stridewear/storefront-api/configs"
	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/kiosk"
)

func main() {
	cfg := config.LoadGuest()

	baseURL := flag.String("api", "http://localhost:8080", "storefront API base URL")
	stateDir := flag.String("state", cfg.StateDir, "guest state directory")
	syncTimeout := flag.Duration("sync-timeout", cfg.SyncTimeout, "timeout for one sync call")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	store, err := kiosk.NewStore(*stateDir, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open guest state:", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "add":
		// add <productId> <size> <quantity> <price> [name]
		if len(args) < 5 {
			usage()
			os.Exit(2)
		}
		qty, err1 := strconv.Atoi(args[3])
		price, err2 := strconv.ParseFloat(args[4], 64)
		if err1 != nil || err2 != nil || qty < 1 || price < 0 {
			fmt.Fprintln(os.Stderr, "invalid quantity or price")
			os.Exit(2)
		}
		name := ""
		if len(args) > 5 {
			name = args[5]
		}
		item := guest.CartItem{ProductID: args[1], Size: args[2], Quantity: qty, Price: price, ProductName: name}
		if err := store.AddToCart(item); err != nil {
			fmt.Fprintln(os.Stderr, "failed to add item:", err)
			os.Exit(1)
		}

	case "remove":
		// remove <productId> <size>
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		if err := store.RemoveFromCart(args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, "failed to remove item:", err)
			os.Exit(1)
		}

	case "show":
		for _, it := range store.Cart() {
			fmt.Printf("%s size %s x%d @ %.2f\n", it.ProductID, it.Size, it.Quantity, it.Price)
		}
		for _, o := range store.Orders() {
			fmt.Printf("order %s total %.2f\n", o.OrderNumber, o.Totals.Total)
		}

	case "clear":
		if err := store.ClearCart(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to clear cart:", err)
			os.Exit(1)
		}
		if err := store.ClearOrders(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to clear orders:", err)
			os.Exit(1)
		}

	case "sync":
		// sync <userId> <token>
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		coordinator := kiosk.NewSyncCoordinator(store, *baseURL, *syncTimeout, logger)
		if err := coordinator.TriggerSync(context.Background(), args[1], args[2]); err != nil {
			// Guest state stays intact; the next sync retries everything.
			fmt.Fprintln(os.Stderr, "sync failed, data kept locally:", err)
			os.Exit(1)
		}
		fmt.Println("state:", coordinator.State())

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kiosk [flags] <command>

commands:
  add <productId> <size> <quantity> <price> [name]
  remove <productId> <size>
  show
  clear
  sync <userId> <token>`)
}
