package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Template builders for every transactional email. Subjects and copy follow
// the site's voice; all client-supplied values are HTML-escaped.

const brandHeader = `<div style="background-color:#1e3a8a;color:#ffffff;padding:30px 20px;text-align:center;border-radius:8px 8px 0 0;"><h1 style="margin:0;">All R&eacute;sum&eacute; Services</h1></div>`

func wrapHTML(inner string) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"></head>` +
		`<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">` +
		`<div style="max-width:600px;margin:0 auto;padding:20px;">` +
		brandHeader +
		`<div style="background-color:#ffffff;padding:30px 20px;border:1px solid #e5e7eb;border-top:none;border-radius:0 0 8px 8px;">` +
		inner +
		`</div></div></body></html>`
}

type OrderEmailData struct {
	OrderID       uint
	CustomerName  string
	CustomerEmail string
	PackageName   string
	Amount        string
	Currency      string
	PaypalOrderID string
}

func OrderConfirmation(d OrderEmailData) Message {
	name := d.CustomerName
	if name == "" {
		name = "there"
	}
	subject := fmt.Sprintf("Order Confirmation #%d - All Resume Services", d.OrderID)

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">Thank you for your order!</h2>
<p>Hi %s,</p>
<p>We've received your payment and your order is confirmed.</p>
<table style="width:100%%;border-collapse:collapse;margin:20px 0;">
<tr><td style="padding:8px 0;font-weight:bold;">Order number:</td><td>#%d</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Package:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Amount:</td><td>%s %s</td></tr>
</table>
<p>Next step: complete your client information form so we can get started on your documents.</p>
<p>The All R&eacute;sum&eacute; Services Team</p>`,
		html.EscapeString(name), d.OrderID, html.EscapeString(d.PackageName),
		html.EscapeString(d.Amount), html.EscapeString(d.Currency)))

	text := fmt.Sprintf(
		"Thank you for your order!\n\nOrder number: #%d\nPackage: %s\nAmount: %s %s\n\n"+
			"Next step: complete your client information form so we can get started.\n\n"+
			"The All Resume Services Team",
		d.OrderID, d.PackageName, d.Amount, d.Currency)

	return Message{To: d.CustomerEmail, ToName: d.CustomerName, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func AdminOrderNotification(adminEmail string, d OrderEmailData) Message {
	subject := fmt.Sprintf("New Order #%d - %s", d.OrderID, d.PackageName)

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">New order received</h2>
<table style="width:100%%;border-collapse:collapse;margin:20px 0;">
<tr><td style="padding:8px 0;font-weight:bold;">Order:</td><td>#%d</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Customer:</td><td>%s (%s)</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Package:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Amount:</td><td>%s %s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">PayPal order:</td><td>%s</td></tr>
</table>`,
		d.OrderID, html.EscapeString(d.CustomerName), html.EscapeString(d.CustomerEmail),
		html.EscapeString(d.PackageName), html.EscapeString(d.Amount),
		html.EscapeString(d.Currency), html.EscapeString(d.PaypalOrderID)))

	text := fmt.Sprintf(
		"New order received\n\nOrder: #%d\nCustomer: %s (%s)\nPackage: %s\nAmount: %s %s\nPayPal order: %s\n",
		d.OrderID, d.CustomerName, d.CustomerEmail, d.PackageName, d.Amount, d.Currency, d.PaypalOrderID)

	return Message{To: adminEmail, ToName: "Admin", Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func IntakeConfirmation(clientEmail, clientName, purchasedService string) Message {
	service := purchasedService
	if service == "" {
		service = "resume writing service"
	}
	subject := "We've Received Your Information - All Resume Services"

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">Thank you, %s!</h2>
<p>Your client information form has been received. Our writers will review your
details for your <strong>%s</strong> and be in touch if anything needs clarifying.</p>
<p>Typical turnaround is 3&ndash;5 business days.</p>
<p>The All R&eacute;sum&eacute; Services Team</p>`,
		html.EscapeString(clientName), html.EscapeString(service)))

	text := fmt.Sprintf(
		"Thank you, %s!\n\nYour client information form has been received. Our writers will "+
			"review your details for your %s and be in touch if anything needs clarifying.\n\n"+
			"Typical turnaround is 3-5 business days.\n\nThe All Resume Services Team",
		clientName, service)

	return Message{To: clientEmail, ToName: clientName, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func IntakeAdminNotification(adminEmail, clientName, clientEmail, purchasedService, transactionID string, intakeID uint) Message {
	subject := fmt.Sprintf("New Client Intake Submission - %s", clientName)

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">New intake submission</h2>
<table style="width:100%%;border-collapse:collapse;margin:20px 0;">
<tr><td style="padding:8px 0;font-weight:bold;">Record:</td><td>#%d</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Client:</td><td>%s (%s)</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Service:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Transaction:</td><td>%s</td></tr>
</table>
<p>Review the full submission in the admin dashboard.</p>`,
		intakeID, html.EscapeString(clientName), html.EscapeString(clientEmail),
		html.EscapeString(purchasedService), html.EscapeString(transactionID)))

	text := fmt.Sprintf(
		"New intake submission\n\nRecord: #%d\nClient: %s (%s)\nService: %s\nTransaction: %s\n\n"+
			"Review the full submission in the admin dashboard.",
		intakeID, clientName, clientEmail, purchasedService, transactionID)

	return Message{To: adminEmail, ToName: "Admin", Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func ResumeLater(siteURL, clientEmail, clientName, resumeToken string) Message {
	resumeURL := fmt.Sprintf("%s/thank-you-onboarding?resume_token=%s", strings.TrimRight(siteURL, "/"), resumeToken)
	subject := "Complete Your Client Information Form - All Resume Services"

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">Pick up where you left off</h2>
<p>Hi %s,</p>
<p>Your progress has been saved. Use the button below to return to your client
information form whenever you're ready &mdash; everything you've entered so far
will still be there.</p>
<p style="text-align:center;"><a href="%s" style="display:inline-block;background-color:#1e3a8a;color:#ffffff;padding:14px 28px;text-decoration:none;border-radius:6px;font-weight:600;">Resume My Form</a></p>
<p style="font-size:13px;color:#6b7280;">Or copy this link: %s</p>`,
		html.EscapeString(clientName), resumeURL, resumeURL))

	text := fmt.Sprintf(
		"Hi %s,\n\nYour progress has been saved. Return to your client information form "+
			"with this link - everything you've entered so far will still be there:\n\n%s\n",
		clientName, resumeURL)

	return Message{To: clientEmail, ToName: clientName, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

type ReviewRequestData struct {
	ClientName       string
	ServiceName      string
	CompletionDate   string
	GoogleReviewLink string
}

func ReviewRequest(clientEmail string, d ReviewRequestData) Message {
	name := d.ClientName
	if name == "" {
		name = "Valued Client"
	}
	service := d.ServiceName
	if service == "" {
		service = "resume writing service"
	}
	subject := fmt.Sprintf("%s, how did we do?", name)

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">How did we do?</h2>
<p>Hi %s,</p>
<p>It's been a few weeks since we completed your <strong>%s</strong>. We hope
your new documents are opening doors!</p>
<p>If you have a minute, a short Google review helps other job seekers find us
and means a great deal to our small team.</p>
<p style="text-align:center;"><a href="%s" style="display:inline-block;background-color:#f59e0b;color:#ffffff;padding:14px 28px;text-decoration:none;border-radius:6px;font-weight:600;">Leave a Review</a></p>
<p>Thank you for choosing All R&eacute;sum&eacute; Services.</p>`,
		html.EscapeString(name), html.EscapeString(service), d.GoogleReviewLink))

	text := fmt.Sprintf(
		"Hi %s,\n\nIt's been a few weeks since we completed your %s. If you have a minute, "+
			"a short Google review helps other job seekers find us:\n\n%s\n\n"+
			"Thank you for choosing All Resume Services.",
		name, service, d.GoogleReviewLink)

	return Message{To: clientEmail, ToName: d.ClientName, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

type ContactFormData struct {
	Name            string
	Email           string
	Phone           string
	ServiceInterest string
	Message         string
}

func ContactNotification(recipient string, d ContactFormData, now time.Time) Message {
	subject := fmt.Sprintf("New Contact Form Submission from %s", d.Name)

	var extras strings.Builder
	if d.Phone != "" {
		fmt.Fprintf(&extras, `<p style="margin:10px 0;"><strong>Phone:</strong> %s</p>`, html.EscapeString(d.Phone))
	}
	if d.ServiceInterest != "" {
		fmt.Fprintf(&extras, `<p style="margin:10px 0;"><strong>Service Interest:</strong> %s</p>`, html.EscapeString(d.ServiceInterest))
	}

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">New contact form submission</h2>
<div style="background-color:#f3f4f6;padding:20px;border-radius:8px;margin:20px 0;">
<p style="margin:10px 0;"><strong>Name:</strong> %s</p>
<p style="margin:10px 0;"><strong>Email:</strong> %s</p>
%s</div>
<h3 style="color:#1e3a8a;">Message:</h3>
<p style="background-color:#ffffff;padding:15px;border-left:4px solid #f59e0b;">%s</p>
<p style="color:#6b7280;font-size:12px;">Submitted at: %s</p>`,
		html.EscapeString(d.Name), html.EscapeString(d.Email), extras.String(),
		strings.ReplaceAll(html.EscapeString(d.Message), "\n", "<br>"),
		now.Format("02 Jan 2006 15:04 MST")))

	text := fmt.Sprintf(
		"New Contact Form Submission\n\nName: %s\nEmail: %s\nPhone: %s\nService Interest: %s\n\nMessage:\n%s\n\nSubmitted at: %s",
		d.Name, d.Email, d.Phone, d.ServiceInterest, d.Message, now.Format("02 Jan 2006 15:04 MST"))

	return Message{To: recipient, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func LeadMagnetGuide(email, name, siteURL string) Message {
	greeting := "Hi there"
	if name != "" {
		greeting = "Hi " + name
	}
	guideURL := strings.TrimRight(siteURL, "/") + "/downloads/resume-guide.pdf"
	subject := "Your Free Resume Guide - All Resume Services"

	htmlBody := wrapHTML(fmt.Sprintf(
		`<h2 style="color:#1e3a8a;">Your free guide is here</h2>
<p>%s,</p>
<p>Thanks for your interest! Your free resume guide is ready to download.</p>
<p style="text-align:center;"><a href="%s" style="display:inline-block;background-color:#1e3a8a;color:#ffffff;padding:14px 28px;text-decoration:none;border-radius:6px;font-weight:600;">Download the Guide</a></p>`,
		html.EscapeString(greeting), guideURL))

	text := fmt.Sprintf("%s,\n\nThanks for your interest! Download your free resume guide here:\n\n%s\n", greeting, guideURL)

	return Message{To: email, ToName: name, Subject: subject, HTMLBody: htmlBody, TextBody: text}
}

func TestEmail(recipient string) Message {
	return Message{
		To:       recipient,
		Subject:  "Test Email from All Resume Services",
		HTMLBody: "<p>This is a test email to verify your email configuration is working correctly.</p>",
		TextBody: "This is a test email to verify your email configuration is working correctly.",
	}
}

type FailureAlertData struct {
	EmailType      string
	RecipientEmail string
	RecipientName  string
	Subject        string
	ErrorMessage   string
	AttemptedAt    time.Time
}

func FailureAlert(adminEmail string, d FailureAlertData) Message {
	subject := fmt.Sprintf("Email Delivery Failed: %s", d.EmailType)

	recipient := d.RecipientEmail
	if d.RecipientName != "" {
		recipient = fmt.Sprintf("%s (%s)", d.RecipientName, d.RecipientEmail)
	}

	htmlBody := wrapHTML(fmt.Sprintf(
		`<div style="background-color:#fef2f2;border-left:4px solid #dc2626;padding:16px;margin-bottom:20px;">
<h2 style="color:#dc2626;margin:0 0 10px 0;">Email Delivery Failed</h2>
<p style="margin:0;color:#7f1d1d;">An email failed to send. Please investigate.</p>
</div>
<table style="width:100%%;border-collapse:collapse;">
<tr><td style="padding:8px 0;font-weight:bold;width:140px;">Email type:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Recipient:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Subject:</td><td>%s</td></tr>
<tr><td style="padding:8px 0;font-weight:bold;">Attempted at:</td><td>%s</td></tr>
</table>
<h4 style="color:#c2410c;">Error message:</h4>
<pre style="background-color:#fff7ed;padding:12px;border-radius:4px;font-size:13px;color:#7f1d1d;">%s</pre>
<p style="color:#6b7280;font-size:12px;">To prevent spam, you will only receive one alert per email type per hour.</p>`,
		html.EscapeString(d.EmailType), html.EscapeString(recipient),
		html.EscapeString(d.Subject), d.AttemptedAt.Format(time.RFC1123),
		html.EscapeString(d.ErrorMessage)))

	text := fmt.Sprintf(
		"EMAIL DELIVERY FAILED\n\nAn email failed to send. Please investigate.\n\n"+
			"Email type: %s\nRecipient: %s\nSubject: %s\nAttempted at: %s\n\nError message:\n%s\n\n"+
			"Note: to prevent spam, you will only receive one alert per email type per hour.",
		d.EmailType, recipient, d.Subject, d.AttemptedAt.Format(time.RFC1123), d.ErrorMessage)

	return Message{To: adminEmail, ToName: "Admin", Subject: subject, HTMLBody: htmlBody, TextBody: text}
}
