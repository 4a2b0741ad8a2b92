package services

import (
	"bytes"
	"fmt"
	"html/template"

	"rentals/constants"
	"rentals/models"
)

type mailTemplate struct {
	subject string
	body    *template.Template
}

// Các template email theo locale; locale không có thì dùng tiếng Tây Ban Nha
var mailTemplates = map[string]map[string]mailTemplate{
	"host_request": {
		constants.LocaleES: {
			subject: "Nueva solicitud de reserva: %s",
			body: template.Must(template.New("host_es").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<h2>Nueva solicitud de reserva</h2>
	<p><strong>{{.Booking.GuestName}}</strong> quiere reservar <strong>{{.Apartment.Title}}</strong>.</p>
	<ul>
		<li>Entrada: {{.Booking.CheckIn}}</li>
		<li>Salida: {{.Booking.CheckOut}}</li>
		<li>Huéspedes: {{.Booking.TotalGuests}}</li>
		<li>Total: {{printf "%.2f" .Booking.TotalPrice}}</li>
		<li>Email: {{.Booking.GuestEmail}}</li>
		<li>Teléfono: {{.Booking.GuestPhone}}</li>
	</ul>
	{{if .Booking.Notes}}<p>Notas: {{.Booking.Notes}}</p>{{end}}
	<p>La reserva queda pendiente hasta que la confirmes en el panel.</p>
</body></html>`)),
		},
		constants.LocaleEN: {
			subject: "New booking request: %s",
			body: template.Must(template.New("host_en").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<h2>New booking request</h2>
	<p><strong>{{.Booking.GuestName}}</strong> would like to book <strong>{{.Apartment.Title}}</strong>.</p>
	<ul>
		<li>Check-in: {{.Booking.CheckIn}}</li>
		<li>Check-out: {{.Booking.CheckOut}}</li>
		<li>Guests: {{.Booking.TotalGuests}}</li>
		<li>Total: {{printf "%.2f" .Booking.TotalPrice}}</li>
		<li>Email: {{.Booking.GuestEmail}}</li>
		<li>Phone: {{.Booking.GuestPhone}}</li>
	</ul>
	{{if .Booking.Notes}}<p>Notes: {{.Booking.Notes}}</p>{{end}}
	<p>The booking stays pending until you confirm it from the dashboard.</p>
</body></html>`)),
		},
	},
	"guest_request": {
		constants.LocaleES: {
			subject: "Recibimos tu solicitud para %s",
			body: template.Must(template.New("guest_es").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<h2>¡Gracias, {{.Booking.GuestName}}!</h2>
	<p>Recibimos tu solicitud para <strong>{{.Apartment.Title}}</strong> del {{.Booking.CheckIn}} al {{.Booking.CheckOut}}.</p>
	<p>El anfitrión la revisará y te avisaremos cuando sea confirmada.</p>
	{{if .Apartment.ContactWhatsapp}}<p>WhatsApp del anfitrión: {{.Apartment.ContactWhatsapp}}</p>{{end}}
</body></html>`)),
		},
		constants.LocaleEN: {
			subject: "We received your request for %s",
			body: template.Must(template.New("guest_en").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<h2>Thank you, {{.Booking.GuestName}}!</h2>
	<p>We received your request for <strong>{{.Apartment.Title}}</strong> from {{.Booking.CheckIn}} to {{.Booking.CheckOut}}.</p>
	<p>The host will review it and we will let you know once it is confirmed.</p>
	{{if .Apartment.ContactWhatsapp}}<p>Host WhatsApp: {{.Apartment.ContactWhatsapp}}</p>{{end}}
</body></html>`)),
		},
	},
	"guest_status": {
		constants.LocaleES: {
			subject: "Tu reserva en %s fue actualizada",
			body: template.Must(template.New("status_es").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<p>Hola {{.Booking.GuestName}},</p>
	{{if eq .Status "confirmed"}}<p>Tu reserva para <strong>{{.Apartment.Title}}</strong> del {{.Booking.CheckIn}} al {{.Booking.CheckOut}} está <strong>confirmada</strong>.</p>
	{{else}}<p>Tu reserva para <strong>{{.Apartment.Title}}</strong> del {{.Booking.CheckIn}} al {{.Booking.CheckOut}} fue <strong>cancelada</strong>.</p>{{end}}
</body></html>`)),
		},
		constants.LocaleEN: {
			subject: "Your booking at %s was updated",
			body: template.Must(template.New("status_en").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<p>Hi {{.Booking.GuestName}},</p>
	{{if eq .Status "confirmed"}}<p>Your booking for <strong>{{.Apartment.Title}}</strong> from {{.Booking.CheckIn}} to {{.Booking.CheckOut}} is <strong>confirmed</strong>.</p>
	{{else}}<p>Your booking for <strong>{{.Apartment.Title}}</strong> from {{.Booking.CheckIn}} to {{.Booking.CheckOut}} was <strong>cancelled</strong>.</p>{{end}}
</body></html>`)),
		},
	},
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html><body style="font-family: Arial, sans-serif;">
	<h2>{{len .}} pending booking(s)</h2>
	<table cellpadding="4" border="1" style="border-collapse: collapse;">
		<tr><th>Apartment</th><th>Guest</th><th>Check-in</th><th>Check-out</th><th>Created</th></tr>
		{{range .}}<tr>
			<td>{{if .Apartment}}{{.Apartment.Title}}{{else}}{{.ApartmentID}}{{end}}</td>
			<td>{{.GuestName}} ({{.GuestEmail}})</td>
			<td>{{.CheckIn}}</td>
			<td>{{.CheckOut}}</td>
			<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
		</tr>{{end}}
	</table>
</body></html>`))

type mailData struct {
	Booking   *models.Booking
	Apartment *models.Apartment
	Status    models.BookingStatus
}

// renderMail trả về subject và nội dung html theo template và locale
func renderMail(name, locale string, data mailData) (string, string, error) {
	byLocale, ok := mailTemplates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", name)
	}
	tpl, ok := byLocale[locale]
	if !ok {
		tpl = byLocale[constants.DefaultLocale]
	}

	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", name, err)
	}
	title := ""
	if data.Apartment != nil {
		title = data.Apartment.Title
	}
	return fmt.Sprintf(tpl.subject, title), buf.String(), nil
}

func renderDigest(bookings []models.Booking) (string, string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, bookings); err != nil {
		return "", "", fmt.Errorf("render digest: %w", err)
	}
	return fmt.Sprintf("%d pending booking(s)", len(bookings)), buf.String(), nil
}
