// Package cli wires the invoice core into a cobra command tree. Every
// subcommand talks to the backend through the collection controller or
// the typed API client, never raw HTTP.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/invogen/invogen-client/internal/client/invoiceapi"
	"github.com/invogen/invogen-client/internal/collection"
	"github.com/invogen/invogen-client/internal/config"
	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/logger"
	"github.com/invogen/invogen-client/internal/session"
)

var version = "0.1.0"

// appContext is the dependency graph shared by all subcommands, built
// once per invocation and torn down when the command finishes.
type appContext struct {
	cfg   *config.Config
	sess  *session.Session
	api   interfaces.InvoiceAPI
	coll  *collection.Controller
	recon *invoice.Reconciler
}

var app *appContext

var rootCmd = &cobra.Command{
	Use:   "invogen",
	Short: "Manage invoices against an Invogen backend",
	Long: `invogen is a command-line client for the Invogen invoice service.

It fetches, creates and mutates invoices through the remote API, keeps a
consistent local view of the collection, and exposes the AI helpers for
parsing free text into drafts and wording payment reminders.

Configuration comes from the environment (or a .env file):
  INVOGEN_API_BASE_URL  backend base URL (default http://localhost:8000)
  INVOGEN_API_TOKEN     bearer token for API calls
  STAGE                 prod enables JSON logging`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func initApp() error {
	if app != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	logger.InitLogger(cfg.Stage)

	sess := session.New(session.User{
		ID:           cfg.UserID,
		Name:         cfg.UserName,
		Email:        cfg.UserEmail,
		BusinessName: cfg.BusinessName,
		Address:      cfg.Address,
		PhoneNumber:  cfg.PhoneNumber,
	}, cfg.APIToken)

	api := invoiceapi.New(invoiceapi.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.RequestTimeout,
	})

	app = &appContext{
		cfg:   cfg,
		sess:  sess,
		api:   api,
		coll:  collection.New(api, sess, logger.Log),
		recon: invoice.NewReconciler(sess),
	}
	return nil
}

// listInvoices adapts the API client for invoice-number proposal.
func listInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	list, err := app.api.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return list.Invoices, nil
}

func Execute() {
	err := rootCmd.Execute()
	if app != nil {
		app.sess.Close()
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
