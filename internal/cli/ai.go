package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invogen/invogen-client/internal/interfaces"
	"github.com/invogen/invogen-client/internal/invoice"
	"github.com/invogen/invogen-client/internal/logger"
	"github.com/invogen/invogen-client/internal/reminder"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Parse free text into an invoice draft",
	Long: `Parse sends the text to the AI extraction endpoint and builds a draft
from whatever it finds. Missing fields get the editor defaults: quantity
1, price 0, no tax. With --create the draft is submitted immediately.`,
	Example: `  invogen parse "Invoice for Acme Corp: 3 x Widget @ 25, 10% tax"
  invogen parse --create "Invoice for Acme Corp: 2 x Support hours @ 120"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var reminderCmd = &cobra.Command{
	Use:   "reminder [invoice-id]",
	Short: "Generate (and optionally send) a payment reminder",
	Example: `  invogen reminder 68b1... --tone firm
  invogen reminder 68b1... --tone final --send`,
	Args: cobra.ExactArgs(1),
	RunE: runReminder,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the account overview",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(parseCmd, reminderCmd, dashboardCmd)

	parseCmd.Flags().Bool("create", false, "Submit the parsed draft as a new invoice")

	reminderCmd.Flags().String("tone", string(interfaces.ToneGentle), "Reminder tone: gentle, firm or final")
	reminderCmd.Flags().Bool("send", false, "Email the reminder to the client")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	text := strings.Join(args, " ")

	ex, err := app.api.ParseInvoiceText(ctx, text)
	if err != nil {
		return err
	}

	draft := app.recon.BuildDraft(invoice.FromExtraction{Extraction: *ex})
	totals := draft.Totals()

	fmt.Fprintf(cmd.OutOrStdout(), "Extraction confidence: %.0f%%\n", ex.Confidence*100)
	if err := printJSON(cmd, draft); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Subtotal %s, tax %s, total %s\n",
		totals.Subtotal.StringFixed(2), totals.TaxTotal.StringFixed(2), totals.Total.StringFixed(2))

	create, _ := cmd.Flags().GetBool("create")
	if !create {
		return nil
	}

	draft.InvoiceNumber = invoice.ProposeNumber(ctx, listInvoices)
	created, err := app.coll.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %s (%s)\n", created.InvoiceNumber, created.ID)
	return nil
}

func runReminder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	toneFlag, _ := cmd.Flags().GetString("tone")
	send, _ := cmd.Flags().GetBool("send")

	tone := interfaces.ReminderTone(toneFlag)
	if !tone.Valid() {
		return fmt.Errorf("unknown tone %q: want gentle, firm or final", toneFlag)
	}

	rem, err := app.api.GenerateReminder(ctx, id, tone)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", rem.Subject, rem.Text)

	if !send {
		return nil
	}
	if app.cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not set; cannot send email")
	}

	inv, err := app.api.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	sender := reminder.NewSender(app.cfg.ResendAPIKey, app.cfg.ReminderFrom, app.cfg.BusinessName, logger.Log)
	if err := sender.Send(ctx, *inv, *rem); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reminder sent to %s\n", inv.BillTo.Email)
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	summary, err := app.api.GetDashboardSummary(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Invoices:    %d\n", summary.InvoiceCount)
	fmt.Fprintf(out, "Revenue:     %s\n", summary.TotalRevenue)
	fmt.Fprintf(out, "Outstanding: %s\n", summary.TotalOutstanding)
	for _, insight := range summary.Insights {
		fmt.Fprintf(out, "  - %s\n", insight)
	}

	if err := app.coll.Refresh(ctx); err != nil {
		return err
	}
	stats := app.coll.Stats()
	if len(stats.Recent) > 0 {
		fmt.Fprintln(out, "\nRecent invoices:")
		for _, inv := range stats.Recent {
			fmt.Fprintf(out, "  %s  %-20s %s  %s\n",
				inv.InvoiceNumber, inv.BillTo.ClientName, inv.Total.StringFixed(2), inv.Status)
		}
	}
	return nil
}
