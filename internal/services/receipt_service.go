package services

import (
	"bytes"
	"fmt"
	"strings"

	"checkout-backend/internal/checkout"
	"checkout-backend/internal/domain"
	"checkout-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders the booking receipt PDF handed to the ticket and
// notification subsystems after a confirmed payment.
type ReceiptService struct {
	RequestID string
	Loader    func(sessionID string) (receiptData, error)
}

type receiptData struct {
	SessionID          string
	ConfirmationNumber string
	BookingID          string
	BookingDate        string
	PrimaryName        string
	PrimaryWhatsapp    string
	PrimaryEmail       string
	Lines              []receiptLine
	MemberCount        int
	TotalPrice         float64
}

type receiptLine struct {
	Title     string
	Date      string
	Location  string
	Headcount int
	Amount    float64
}

// GenerateReceipt builds the PDF for a confirmed session.
func (s ReceiptService) GenerateReceipt(sess *checkout.Session) ([]byte, string, error) {
	data, err := s.loadReceiptData(sess)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", "confirmation="+data.ConfirmationNumber)
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(sess *checkout.Session) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader("")
	}

	var out receiptData
	conf := sess.Confirmation()
	if conf == nil {
		return out, domain.ValidationError{Msg: "booking not confirmed yet"}
	}

	out.SessionID = sess.ID()
	out.ConfirmationNumber = conf.ConfirmationNumber
	out.BookingID = conf.BookingID
	out.BookingDate = conf.BookingDate
	out.TotalPrice = sess.TotalPrice()

	form := sess.FormDefaults()
	out.MemberCount = len(form.Members)
	for _, m := range form.Members {
		if m.IsPrimary {
			out.PrimaryName = m.FullName
			out.PrimaryWhatsapp = m.WhatsappNumber
			out.PrimaryEmail = m.Email
			break
		}
	}

	meta := sess.AllMetadata()
	activities := sess.Activities()
	ferries := sess.Ferries()
	for i, m := range meta {
		line := receiptLine{
			Title:     m.Title,
			Date:      m.Date,
			Location:  m.Location,
			Headcount: m.TotalRequired,
		}
		if i < len(activities) {
			line.Amount = activities[i].TotalPrice
		} else if j := i - len(activities); j < len(ferries) {
			line.Amount = ferries[j].TotalPrice
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Confirmation : %s", safe(d.ConfirmationNumber, "-")),
		fmt.Sprintf("Booking ID   : %s", safe(d.BookingID, "-")),
		fmt.Sprintf("Booked on    : %s", safe(d.BookingDate, "-")),
		fmt.Sprintf("Lead guest   : %s", safe(d.PrimaryName, "-")),
		fmt.Sprintf("WhatsApp     : %s", safe(d.PrimaryWhatsapp, "-")),
		fmt.Sprintf("Email        : %s", safe(d.PrimaryEmail, "-")),
		fmt.Sprintf("Travellers   : %d", d.MemberCount),
	}
	for _, s := range head {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, line := range d.Lines {
		desc := fmt.Sprintf("%d) %s", i+1, safe(line.Title, "-"))
		if line.Date != "" || line.Location != "" {
			desc += fmt.Sprintf(" (%s %s)", safe(line.Date, "-"), safe(line.Location, "-"))
		}
		desc += fmt.Sprintf(" x%d pax - %s", line.Headcount, utils.FormatINR(line.Amount))
		pdf.MultiCell(0, 6, desc, "", "", false)
		pdf.Ln(1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Total: "+utils.FormatINR(d.TotalPrice))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid photo ID for every traveller. Tickets for individual activities and ferries are sent separately.", "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, "Generated: "+utils.FormatDateTime(utils.NowUTC())+" UTC")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(d.ConfirmationNumber))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "booking"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
