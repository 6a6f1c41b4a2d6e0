package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var ticketMailTemplate = template.Must(template.New("ticket-mail").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f4;font-family:Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background-color:#ffffff;">
    <div style="background-color:#1a1a2e;padding:32px 24px;text-align:center;">
      <h1 style="color:#ffffff;margin:0;font-size:24px;">{{.Greeting}}</h1>
      <p style="color:#cccccc;margin:8px 0 0;">{{.MuseumName}}</p>
    </div>
    <div style="padding:24px;">
      <p style="color:#333333;font-size:15px;">{{.Message}}</p>
      <h2 style="color:#1a1a2e;font-size:18px;border-bottom:2px solid #1a1a2e;padding-bottom:8px;">{{.YourTickets}}</h2>
      {{range .Tickets}}
      <div style="border:1px solid #dddddd;border-radius:8px;padding:16px;margin:16px 0;text-align:center;">
        <p style="color:#333333;font-weight:bold;margin:0 0 4px;">{{$.TicketLabel}} {{.Number}}</p>
        <p style="color:#666666;font-size:13px;margin:0 0 12px;">{{$.CodeLabel}}: {{.Code}}</p>
        <img src="{{.QRImageURL}}" alt="{{$.QRLabel}}" width="180" height="180" style="display:block;margin:0 auto;">
      </div>
      {{end}}
      <h3 style="color:#1a1a2e;font-size:16px;">{{.HowToUse}}</h3>
      <ol style="color:#333333;font-size:14px;padding-left:20px;">
        <li style="margin-bottom:6px;">{{.Step1}}</li>
        <li style="margin-bottom:6px;">{{.Step2}}</li>
        <li style="margin-bottom:6px;">{{.Step3}}</li>
      </ol>
      {{if .ShowSummary}}
      <div style="background-color:#f8f8f8;border-radius:8px;padding:16px;margin-top:16px;">
        <p style="color:#333333;margin:0;font-size:14px;">{{.SummaryLine}}</p>
      </div>
      {{end}}
    </div>
    <div style="background-color:#f4f4f4;padding:16px 24px;text-align:center;">
      <p style="color:#888888;font-size:12px;margin:0;">{{.Footer}}</p>
      <p style="color:#888888;font-size:12px;margin:4px 0 0;">{{.ContactInfo}}</p>
    </div>
  </div>
</body>
</html>`))

type mailTicket struct {
	Number     int
	Code       string
	QRImageURL string
}

type mailData struct {
	Greeting    string
	MuseumName  string
	Message     string
	YourTickets string
	TicketLabel string
	CodeLabel   string
	QRLabel     string
	HowToUse    string
	Step1       string
	Step2       string
	Step3       string
	ShowSummary bool
	SummaryLine string
	Footer      string
	ContactInfo string
	Tickets     []mailTicket
}

// renderEmail produces the HTML and plain-text bodies for a relay request.
// QR images are served by the external QR renderer, pointed at the same URL
// the on-screen QR encodes.
func renderEmail(req RelayRequest, qrImageBase string) (string, string, error) {
	tr := req.Translations
	if tr == nil {
		tr = TranslationsFor("en")
	}

	museumName := tr["museumName"]
	if req.Museum != nil && req.Museum.Name != "" {
		museumName = req.Museum.Name
	}

	data := mailData{
		Greeting:    tr["emailGreeting"],
		MuseumName:  museumName,
		Message:     tr["emailMessage"],
		YourTickets: tr["yourTickets"],
		TicketLabel: tr["ticket"],
		CodeLabel:   tr["ticketCode"],
		QRLabel:     tr["qrCode"],
		HowToUse:    tr["howToUse"],
		Step1:       tr["step1"],
		Step2:       tr["step2"],
		Step3:       tr["step3"],
		Footer:      tr["emailFooter"],
		ContactInfo: tr["contactInfo"],
	}

	if req.OrderSummary.Quantity > 0 {
		data.ShowSummary = true
		data.SummaryLine = fmt.Sprintf("%s: %d x %.2f EUR", tr["yourTickets"],
			req.OrderSummary.Quantity, req.OrderSummary.TotalPrice/float64(req.OrderSummary.Quantity))
	}

	for i, t := range req.Tickets {
		data.Tickets = append(data.Tickets, mailTicket{
			Number:     i + 1,
			Code:       t.Code,
			QRImageURL: qrImageURL(qrImageBase, t.QRUrl),
		})
	}

	var htmlBuf bytes.Buffer
	if err := ticketMailTemplate.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render email template: %w", err)
	}

	return htmlBuf.String(), renderText(data), nil
}

// qrImageURL builds the external QR renderer URL for a ticket link.
func qrImageURL(base, link string) string {
	return base + "?size=180x180&data=" + url.QueryEscape(link)
}

func renderText(data mailData) string {
	var b strings.Builder

	b.WriteString(data.Greeting + "\n")
	b.WriteString(data.MuseumName + "\n\n")
	b.WriteString(data.Message + "\n\n")
	b.WriteString(data.YourTickets + ":\n")
	for _, t := range data.Tickets {
		fmt.Fprintf(&b, "%s %d - %s: %s\n", data.TicketLabel, t.Number, data.CodeLabel, t.Code)
	}
	b.WriteString("\n" + data.HowToUse + ":\n")
	fmt.Fprintf(&b, "1. %s\n2. %s\n3. %s\n\n", data.Step1, data.Step2, data.Step3)
	b.WriteString(data.Footer + "\n")
	b.WriteString(data.ContactInfo + "\n")

	return b.String()
}
