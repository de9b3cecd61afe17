package notification

import (
	"bytes"
	"html/template"

	"haven/models"
)

var statusTmpl = template.Must(template.New("status").Parse(`<html><body>
<h2>{{.VenueName}}</h2>
<p>Hi {{.CustomerName}},</p>
<p>{{.Body}}</p>
<p>Booking reference: <strong>{{.BookingID}}</strong><br>
Dates: {{.Start}} to {{.End}}<br>
Total: PHP {{printf "%.2f" .Total}}</p>
</body></html>`))

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html><body>
<h2>Official Receipt</h2>
<p>Receipt no. <strong>{{.Reference}}</strong></p>
<p>Billed to: {{.CustomerName}} ({{.CustomerEmail}})</p>
<table cellpadding="6">
<tr><td>Venue</td><td>{{.VenueName}}</td></tr>
<tr><td>Dates</td><td>{{.Start}} to {{.End}}</td></tr>
<tr><td>Amount paid</td><td><strong>{{.Currency}} {{printf "%.2f" .TotalAmount}}</strong></td></tr>
<tr><td>Issued</td><td>{{.Issued}}</td></tr>
</table>
<p>Thank you for your payment.</p>
</body></html>`))

func statusEmailHTML(b *models.Booking, venueName, body string) string {
	var buf bytes.Buffer
	_ = statusTmpl.Execute(&buf, map[string]any{
		"VenueName":    venueName,
		"CustomerName": b.CustomerName,
		"Body":         body,
		"BookingID":    b.ID,
		"Start":        b.StartDate.Format("January 2, 2006"),
		"End":          b.EndDate.Format("January 2, 2006"),
		"Total":        b.TotalAmount,
	})
	return buf.String()
}

func receiptEmailHTML(r models.Receipt) string {
	var buf bytes.Buffer
	_ = receiptTmpl.Execute(&buf, map[string]any{
		"Reference":     r.Reference,
		"CustomerName":  r.CustomerName,
		"CustomerEmail": r.CustomerEmail,
		"VenueName":     r.VenueName,
		"Start":         r.StartDate.Format("January 2, 2006"),
		"End":           r.EndDate.Format("January 2, 2006"),
		"Currency":      r.Currency,
		"TotalAmount":   r.TotalAmount,
		"Issued":        r.IssuedAt.Format("January 2, 2006 15:04 MST"),
	})
	return buf.String()
}
