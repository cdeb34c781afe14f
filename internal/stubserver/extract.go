package stubserver

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/invogen/invogen-client/internal/invoice"
)

// The production parser runs an LLM; the stub settles for regexes over
// common phrasings like "invoice for Acme Corp: 3 x Widget @ 25, 10% tax".
var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+?[0-9][0-9\-\s()]{6,}[0-9]`)
	clientPattern = regexp.MustCompile(`(?i)(?:invoice\s+)?for\s+([A-Z][A-Za-z0-9&.' ]*?)(?:[:,.\n]|$)`)
	itemPattern   = regexp.MustCompile(`(?i)(\d+)\s*x\s*([A-Za-z][A-Za-z0-9' ]*?)\s*(?:@|at)\s*\$?(\d+(?:\.\d+)?)`)
	taxPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(?i:tax|vat|gst)`)
)

type parseTextRequest struct {
	Text string `json:"text" binding:"required"`
}

type parseTextResponse struct {
	InvoiceData invoice.Extraction `json:"invoiceData"`
	Confidence  float64            `json:"confidence"`
}

func (s *Server) parseText(c *gin.Context) {
	var req parseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "text is required")
		return
	}

	ex, confidence := extract(req.Text)
	respond(c, http.StatusOK, parseTextResponse{InvoiceData: ex, Confidence: confidence})
}

// extract pulls what it can from free text. Fields it cannot find stay
// empty; confidence is the share of signal groups that matched.
func extract(text string) (invoice.Extraction, float64) {
	var ex invoice.Extraction
	matched := 0

	if m := clientPattern.FindStringSubmatch(text); m != nil {
		ex.ClientName = strings.TrimSpace(m[1])
		matched++
	}
	if m := emailPattern.FindString(text); m != "" {
		ex.Email = m
		matched++
	}
	if m := phonePattern.FindString(text); m != "" {
		ex.PhoneNumber = strings.TrimSpace(m)
		matched++
	}

	var tax *decimal.Decimal
	if m := taxPattern.FindStringSubmatch(text); m != nil {
		if d, err := decimal.NewFromString(m[1]); err == nil {
			tax = &d
		}
	}

	for _, m := range itemPattern.FindAllStringSubmatch(text, -1) {
		qty, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(m[3])
		if err != nil {
			continue
		}
		item := invoice.ExtractedItem{
			Name:      strings.TrimSpace(m[2]),
			Quantity:  &qty,
			UnitPrice: &price,
		}
		if tax != nil {
			t := *tax
			item.TaxPercent = &t
		}
		ex.Items = append(ex.Items, item)
	}
	if len(ex.Items) > 0 {
		matched++
	}

	confidence := float64(matched) / 4
	ex.Confidence = confidence
	return ex, confidence
}
