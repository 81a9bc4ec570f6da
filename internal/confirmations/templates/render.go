package templates

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"

	"tablebooker/internal/bookings/allocator"
	"tablebooker/pkg/model"
)

// Contact is the restaurant block printed at the bottom of every email.
type Contact struct {
	Address   string
	Phone     string
	Email     string
	Instagram string
}

var DefaultContact = Contact{
	Address:   "Carrer de Cartago 22, El Arenal, 07600",
	Email:     "info@cheersmallorca.com",
	Instagram: "@cheersmallorca",
}

type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

type view struct {
	T                  translation
	GuestName          string
	ConfirmationNumber string
	Date               string
	Time               string
	PartySize          int
	GuestWord          string
	Table              string
	Section            string
	SpecialRequests    string
	Contact            Contact
}

// ConfirmationNumber is the first eight characters of the reservation id,
// upper-cased.
func ConfirmationNumber(reservationID string) string {
	id := reservationID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// FormatDate spells a YYYY-MM-DD date out in language, e.g. "Monday, June 3,
// 2030". Unparseable input is returned unchanged.
func FormatDate(date, language string) string {
	d, err := allocator.ParseDate(date)
	if err != nil {
		return date
	}
	t := lookup(language)
	return fmt.Sprintf(t.dateLayout, t.weekdays[d.Weekday()], d.Day(), t.months[d.Month()-1], d.Year())
}

// RenderConfirmation builds the localized "reservation received" email.
func RenderConfirmation(e *model.ReservationCreatedEvent, contact Contact) (*Rendered, error) {
	t := lookup(e.Language)

	v := view{
		T:                  t,
		GuestName:          e.GuestName,
		ConfirmationNumber: ConfirmationNumber(e.ReservationID),
		Date:               FormatDate(e.ReservationDate, e.Language),
		Time:               allocator.TrimClock(e.StartTime),
		PartySize:          e.PartySize,
		GuestWord:          t.Guests,
		Section:            e.Section,
		SpecialRequests:    e.SpecialRequests,
		Contact:            contact,
	}
	if e.PartySize == 1 {
		v.GuestWord = t.Guest
	}
	if e.TableNumber > 0 {
		v.Table = strconv.Itoa(e.TableNumber)
	}

	var text bytes.Buffer
	if err := textTemplate.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("render text body: %w", err)
	}
	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	return &Rendered{
		Subject: t.Subject,
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, nil
}

var textTemplate = texttemplate.Must(texttemplate.New("text").Parse(`
{{.T.Greeting}}, {{.GuestName}}!

{{.T.ConfirmationMessage}}

{{.T.ReservationDetails}}:
-----------------------------------
{{.T.ConfirmationNumber}}: #{{.ConfirmationNumber}}
{{.T.Date}}: {{.Date}}
{{.T.Time}}: {{.Time}}
{{.T.PartySize}}: {{.PartySize}} {{.GuestWord}}
{{- if .Table}}
{{.T.Table}}: {{.Table}}
{{- end}}
{{- if .Section}}
{{.T.Section}}: {{.Section}}
{{- end}}
{{if .SpecialRequests}}
{{.T.SpecialRequests}}:
{{.SpecialRequests}}
{{end}}
{{.T.ConfirmationInfo}}

{{.T.ContactUs}}:
{{.Contact.Address}}
{{- if .Contact.Phone}}
{{.Contact.Phone}}
{{- end}}
{{.Contact.Email}}
Instagram: {{.Contact.Instagram}}

{{.T.LookingForward}}

{{.T.Footer}}
GrandCafe Cheers - El Arenal, Mallorca
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: #fff; border-radius: 8px; padding: 40px;">
    <div style="text-align: center; margin-bottom: 30px;">
      <div style="font-size: 28px; font-weight: bold; color: #d97706;">GrandCafe Cheers</div>
      <div style="color: #666; font-size: 14px;">El Arenal, Platja de Palma, Mallorca</div>
    </div>

    <h1 style="color: #111827; font-size: 24px;">{{.T.Greeting}}, {{.GuestName}}!</h1>
    <p style="font-size: 16px; color: #4b5563;">{{.T.ConfirmationMessage}}</p>

    <div style="text-align: center;">
      <span style="display: inline-block; background-color: #fef3c7; color: #92400e; padding: 6px 16px; border-radius: 20px; font-weight: 600;">{{.T.PendingStatus}}</span>
    </div>

    <div style="background-color: #f9fafb; border-left: 4px solid #d97706; padding: 20px; margin: 20px 0;">
      <h2 style="margin-top: 0; font-size: 18px;">{{.T.ReservationDetails}}</h2>
      <p><span style="color: #6b7280;">{{.T.ConfirmationNumber}}:</span> <strong>#{{.ConfirmationNumber}}</strong></p>
      <p><span style="color: #6b7280;">{{.T.Date}}:</span> <strong>{{.Date}}</strong></p>
      <p><span style="color: #6b7280;">{{.T.Time}}:</span> <strong>{{.Time}}</strong></p>
      <p><span style="color: #6b7280;">{{.T.PartySize}}:</span> <strong>{{.PartySize}} {{.GuestWord}}</strong></p>
      {{- if .Table}}
      <p><span style="color: #6b7280;">{{.T.Table}}:</span> <strong>{{.Table}}</strong></p>
      {{- end}}
      {{- if .Section}}
      <p><span style="color: #6b7280;">{{.T.Section}}:</span> <strong>{{.Section}}</strong></p>
      {{- end}}
    </div>

    {{- if .SpecialRequests}}
    <div style="background-color: #fef3c7; padding: 15px; border-radius: 6px; margin: 20px 0;">
      <strong>{{.T.SpecialRequests}}:</strong><br>
      {{.SpecialRequests}}
    </div>
    {{- end}}

    <p style="color: #6b7280; font-size: 14px;">{{.T.ConfirmationInfo}}</p>

    <div style="background-color: #eff6ff; padding: 20px; border-radius: 6px; margin: 20px 0;">
      <strong>{{.T.ContactUs}}:</strong><br>
      {{.Contact.Address}}<br>
      {{- if .Contact.Phone}}
      {{.Contact.Phone}}<br>
      {{- end}}
      <a href="mailto:{{.Contact.Email}}">{{.Contact.Email}}</a><br>
      Instagram: {{.Contact.Instagram}}
    </div>

    <p style="color: #6b7280; font-size: 14px;">{{.T.LookingForward}}</p>

    <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #9ca3af; font-size: 12px;">
      <p>{{.T.Footer}}<br>GrandCafe Cheers - El Arenal, Mallorca</p>
    </div>
  </div>
</body>
</html>
`))
