package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/invogen/invogen-client/internal/invoice"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and display the invoice collection",
	Example: `  invogen list
  invogen list --search acme
  invogen list --status Unpaid`,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show [invoice-id]",
	Short: "Display one invoice as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from flags",
	Long: `Create builds a draft seeded from your business profile, applies the
given client and line item flags, and submits it. When no invoice number
is given, the next free INV-NNN number is proposed from the collection.

Line items use the form name:quantity:unitPrice[:taxPercent].`,
	Example: `  invogen create --client "Acme Corp" --item "Consulting:5:25000" --item "Setup fee:1:150000"
  invogen create --client "Acme Corp" --email billing@acme.test --item "Widgets:10:49.99:7.5" --due 2026-10-01`,
	RunE: runCreate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [invoice-id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var statusCmd = &cobra.Command{
	Use:   "status [invoice-id] [Paid|Unpaid|Pending]",
	Short: "Change an invoice's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, createCmd, deleteCmd, statusCmd)

	listCmd.Flags().String("search", "", "Substring match on invoice number or client name")
	listCmd.Flags().String("status", string(invoice.StatusAll), "Filter by status")

	createCmd.Flags().String("client", "", "Client name")
	createCmd.Flags().String("email", "", "Client email")
	createCmd.Flags().String("address", "", "Client address")
	createCmd.Flags().String("phone", "", "Client phone number")
	createCmd.Flags().StringArray("item", nil, "Line item as name:quantity:unitPrice[:taxPercent] (repeatable)")
	createCmd.Flags().String("number", "", "Invoice number (default: next free INV-NNN)")
	createCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	createCmd.Flags().String("notes", "", "Free-form notes")
	createCmd.Flags().String("terms", "", "Payment terms (default "+invoice.DefaultPaymentTerms+")")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	search, _ := cmd.Flags().GetString("search")
	statusFlag, _ := cmd.Flags().GetString("status")

	status := invoice.Status(statusFlag)
	if status != invoice.StatusAll && !status.Valid() {
		return fmt.Errorf("unknown status %q", statusFlag)
	}

	if err := app.coll.Refresh(ctx); err != nil {
		return err
	}

	matches := app.coll.Filter(search, status)
	if len(matches) == 0 {
		fmt.Println("No invoices found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tDATE\tTOTAL\tSTATUS")
	for _, inv := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID,
			inv.InvoiceNumber,
			inv.BillTo.ClientName,
			inv.InvoiceDate.Format(invoice.DateLayout),
			inv.Total.StringFixed(2),
			inv.Status)
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	inv, err := app.api.GetInvoice(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, inv)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, _ := cmd.Flags().GetString("client")
	email, _ := cmd.Flags().GetString("email")
	address, _ := cmd.Flags().GetString("address")
	phone, _ := cmd.Flags().GetString("phone")
	itemSpecs, _ := cmd.Flags().GetStringArray("item")
	number, _ := cmd.Flags().GetString("number")
	due, _ := cmd.Flags().GetString("due")
	notes, _ := cmd.Flags().GetString("notes")
	terms, _ := cmd.Flags().GetString("terms")

	draft := app.recon.BuildDraft(invoice.Blank{})
	draft.BillTo = invoice.BillTo{
		ClientName:  client,
		Email:       email,
		Address:     address,
		PhoneNumber: phone,
	}
	draft.DueDate = due
	draft.Notes = notes
	if terms != "" {
		draft.PaymentTerms = terms
	}

	var err error
	for i, spec := range itemSpecs {
		if i > 0 {
			draft = draft.AddItem()
		}
		if draft, err = applyItemSpec(draft, i, spec); err != nil {
			return err
		}
	}

	if number != "" {
		draft.InvoiceNumber = number
	} else {
		draft.InvoiceNumber = invoice.ProposeNumber(ctx, listInvoices)
	}

	created, err := app.coll.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %s (%s), total %s\n",
		created.InvoiceNumber, created.ID, created.Total.StringFixed(2))
	return nil
}

// applyItemSpec parses name:quantity:unitPrice[:taxPercent] onto the
// draft item at index, going through the same field-by-field updates the
// editor would perform.
func applyItemSpec(d invoice.Draft, index int, spec string) (invoice.Draft, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return d, fmt.Errorf("invalid item %q: want name:quantity:unitPrice[:taxPercent]", spec)
	}

	qty, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return d, fmt.Errorf("invalid quantity in item %q: %w", spec, err)
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return d, fmt.Errorf("invalid unit price in item %q: %w", spec, err)
	}
	tax := decimal.Zero
	if len(parts) == 4 {
		if tax, err = decimal.NewFromString(parts[3]); err != nil {
			return d, fmt.Errorf("invalid tax percent in item %q: %w", spec, err)
		}
	}

	for _, step := range []struct {
		field invoice.ItemField
		value interface{}
	}{
		{invoice.ItemName, parts[0]},
		{invoice.ItemQuantity, qty},
		{invoice.ItemUnitPrice, price},
		{invoice.ItemTaxPercent, tax},
	} {
		if d, err = d.UpdateItem(index, step.field, step.value); err != nil {
			return d, err
		}
	}
	return d, nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := app.coll.Refresh(cmd.Context()); err != nil {
		return err
	}
	if err := app.coll.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted invoice %s\n", args[0])
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, status := args[0], invoice.Status(args[1])

	if err := app.coll.Refresh(cmd.Context()); err != nil {
		return err
	}
	updated, err := app.coll.UpdateStatus(cmd.Context(), id, status)
	if err != nil {
		return err
	}
	if updated == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "A status change is already in flight for this invoice.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Invoice %s is now %s\n", updated.InvoiceNumber, updated.Status)
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
