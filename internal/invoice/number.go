package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/logger"
)

// NumberPrefix is the prefix proposed numbers carry.
const NumberPrefix = "INV"

// NextNumber proposes the next invoice number from the existing set:
// the maximum numeric suffix of any NNN-style number plus one, zero
// padded to three digits. An empty set yields INV-001.
func NextNumber(existing []Invoice) string {
	max := 0
	for _, inv := range existing {
		parts := strings.SplitN(inv.InvoiceNumber, "-", 2)
		if len(parts) != 2 {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", NumberPrefix, max+1)
}

// ProposeNumber fetches the current collection through lister and
// proposes the next number. When the lookup fails it falls back to a
// timestamp-derived number rather than leaving the field blank.
func ProposeNumber(ctx context.Context, lister func(context.Context) ([]Invoice, error)) string {
	invoices, err := lister(ctx)
	if err != nil {
		logger.Error("failed to list invoices for number proposal", zap.Error(err))
		return FallbackNumber(time.Now())
	}
	return NextNumber(invoices)
}

// FallbackNumber derives a number from the last five digits of the
// millisecond timestamp, matching what the editor shows when the
// collection cannot be read.
func FallbackNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 5 {
		millis = millis[len(millis)-5:]
	}
	return fmt.Sprintf("%s-%s", NumberPrefix, millis)
}
