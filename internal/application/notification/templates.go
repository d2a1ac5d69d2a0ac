package notification

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"

	"github.com/travelhub/backend/internal/domain/booking"
	"github.com/travelhub/backend/internal/domain/shared"
)

// mailView is the data every booking template renders
type mailView struct {
	Headline         string
	Intro            string
	Reference        string
	TourTitle        string
	Date             string
	Time             string
	Guests           int
	Total            string
	Currency         string
	CustomerName     string
	RefundPercentage int
	RefundAmount     string
	Reason           string
}

const textBody = `Hello {{.CustomerName}},

{{.Intro}}

Reference: {{.Reference}}
Tour: {{.TourTitle}}
Date: {{.Date}}{{if .Time}} at {{.Time}}{{end}}
Guests: {{.Guests}}
Total: {{.Total}} {{.Currency}}
{{- if .Reason}}
Reason: {{.Reason}}{{end}}
{{- if .RefundAmount}}
Refund: {{.RefundAmount}} {{.Currency}} ({{.RefundPercentage}}%){{end}}
`

const htmlBody = `<!DOCTYPE html>
<html><body style="font-family:sans-serif">
<h2>{{.Headline}}</h2>
<p>Hello {{.CustomerName}},</p>
<p>{{.Intro}}</p>
<table cellpadding="4">
<tr><td>Reference</td><td><strong>{{.Reference}}</strong></td></tr>
<tr><td>Tour</td><td>{{.TourTitle}}</td></tr>
<tr><td>Date</td><td>{{.Date}}{{if .Time}} at {{.Time}}{{end}}</td></tr>
<tr><td>Guests</td><td>{{.Guests}}</td></tr>
<tr><td>Total</td><td>{{.Total}} {{.Currency}}</td></tr>
{{- if .Reason}}
<tr><td>Reason</td><td>{{.Reason}}</td></tr>{{end}}
{{- if .RefundAmount}}
<tr><td>Refund</td><td>{{.RefundAmount}} {{.Currency}} ({{.RefundPercentage}}%)</td></tr>{{end}}
</table>
</body></html>
`

var (
	textTemplate = template.Must(template.New("booking.txt").Parse(textBody))
	htmlTemplate = htmltemplate.Must(htmltemplate.New("booking.html").Parse(htmlBody))
)

func newMailView(s booking.Snapshot) mailView {
	return mailView{
		Reference:    s.Reference,
		TourTitle:    s.TourTitle,
		Date:         s.Date.Format(shared.DateLayout),
		Time:         s.SlotTime,
		Guests:       s.Guests,
		Total:        s.TotalPrice.StringFixed(2),
		Currency:     s.Currency,
		CustomerName: s.Customer.Name,
	}
}

func render(subject string, to booking.Customer, v mailView) (Message, error) {
	var text, html bytes.Buffer
	if err := textTemplate.Execute(&text, v); err != nil {
		return Message{}, err
	}
	if err := htmlTemplate.Execute(&html, v); err != nil {
		return Message{}, err
	}
	return Message{
		ToEmail: to.Email,
		ToName:  to.Name,
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
