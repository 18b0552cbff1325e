package mail

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

type emailTemplate struct {
	subject *texttemplate.Template
	body    *template.Template
}

func mustTemplate(name, subject, body string) emailTemplate {
	return emailTemplate{
		subject: texttemplate.Must(texttemplate.New(name + ":subject").Parse(subject)),
		body:    template.Must(template.New(name).Parse(body)),
	}
}

var templates = map[string]emailTemplate{
	"reservation_confirmation": mustTemplate("reservation_confirmation",
		`CEERION Energy - Reservation Confirmation`,
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Reservation Confirmed!</h1>
  <p>Dear {{.name}},</p>
  <p>Thank you for reserving your CEERION Energy system! We're excited to help you achieve energy independence.</p>
  <h2>Your Reservation Details</h2>
  <ul>
    <li><strong>System:</strong> {{.productName}}</li>
    <li><strong>Solar Capacity:</strong> {{.solarSize}} kW</li>
    <li><strong>Battery Storage:</strong> {{.batterySize}} kWh</li>
    <li><strong>Estimated Price:</strong> ${{.estimatedPrice}}*</li>
    <li><strong>Reservation ID:</strong> {{.reservationId}}</li>
  </ul>
  <p style="font-size: 0.9em;">*Price before incentives. Final pricing subject to site assessment.</p>
  <p>Our team will contact you within 48 hours to schedule a site assessment.</p>
  <p>Best regards,<br>The CEERION Energy Team</p>
</div>`),

	"new_reservation_notification": mustTemplate("new_reservation_notification",
		`New System Reservation - {{.firstName}} {{.lastName}}`,
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New System Reservation</h1>
  <h2>Customer Information</h2>
  <ul>
    <li><strong>Name:</strong> {{.firstName}} {{.lastName}}</li>
    <li><strong>Email:</strong> {{.email}}</li>
    <li><strong>Phone:</strong> {{.phone}}</li>
    <li><strong>Location:</strong> {{.location}}</li>
    <li><strong>Country:</strong> {{.country}}</li>
    <li><strong>Property Type:</strong> {{.propertyType}}</li>
  </ul>
  <h2>System Configuration</h2>
  <ul>
    <li><strong>Product:</strong> {{.productName}}</li>
    <li><strong>Solar:</strong> {{.solarSize}} kW</li>
    <li><strong>Battery:</strong> {{.batterySize}} kWh</li>
    <li><strong>EV Integration:</strong> {{if .evIntegration}}Yes{{else}}No{{end}}</li>
    <li><strong>Timeline:</strong> {{.timeline}}</li>
    <li><strong>Budget Range:</strong> {{.budget}}</li>
    <li><strong>Estimated Price:</strong> ${{.estimatedPrice}}</li>
  </ul>
  {{if .specialRequirements}}<h3>Special Requirements</h3><p>{{.specialRequirements}}</p>{{end}}
  <p><strong>Reservation ID:</strong> {{.reservationId}}</p>
  <p><strong>Submitted:</strong> {{.createdAt}}</p>
  <p>Please follow up within 48 hours.</p>
</div>`),

	"newsletter_welcome": mustTemplate("newsletter_welcome",
		`Welcome to CEERION Energy Newsletter`,
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Welcome to CEERION Energy!</h1>
  <p>Hi {{.firstName}},</p>
  <p>Thank you for joining the CEERION Energy newsletter! You're now part of a community dedicated to clean energy independence.</p>
  <p>We'll send you updates <strong>{{.frequency}}</strong> based on your preferences.</p>
  {{if .interests}}
  <p>We'll focus on topics you're interested in:</p>
  <ul>{{range .interests}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  <p>Stay powered up!</p>
  <p>Best regards,<br>The CEERION Energy Team</p>
  <p style="font-size: 0.9em;"><a href="{{.unsubscribeUrl}}">Unsubscribe</a> | CEERION Energy</p>
</div>`),

	"contact_confirmation": mustTemplate("contact_confirmation",
		`CEERION Energy - We received your message`,
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Message Received</h1>
  <p>Hi {{.name}},</p>
  <p>Thank you for contacting CEERION Energy! We've received your message and will respond within 24 hours.</p>
  <h3>Your Message</h3>
  <p><strong>Project Type:</strong> {{.projectType}}</p>
  <p style="white-space: pre-wrap;">{{.message}}</p>
  <p style="font-size: 0.9em;">Reference ID: {{.submissionId}}</p>
  <p>Best regards,<br>The CEERION Energy Team</p>
</div>`),

	"new_contact_notification": mustTemplate("new_contact_notification",
		`New Contact Form Submission - {{.name}}`,
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New Contact Form Submission</h1>
  <h2>Contact Information</h2>
  <ul>
    <li><strong>Name:</strong> {{.name}}</li>
    <li><strong>Email:</strong> {{.email}}</li>
    {{if .phone}}<li><strong>Phone:</strong> {{.phone}}</li>{{end}}
    {{if .location}}<li><strong>Location:</strong> {{.location}}</li>{{end}}
    <li><strong>Project Type:</strong> {{.projectType}}</li>
  </ul>
  <h2>Message</h2>
  <p style="white-space: pre-wrap;">{{.message}}</p>
  <p><strong>Submission ID:</strong> {{.submissionId}}</p>
  <p><strong>Submitted:</strong> {{.createdAt}}</p>
  <p>Please respond within 24 hours.</p>
</div>`),
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, body string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("email template %q not found", name)
	}

	var sb bytes.Buffer
	if err := tpl.subject.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render subject %q: %w", name, err)
	}
	var bb bytes.Buffer
	if err := tpl.body.Execute(&bb, data); err != nil {
		return "", "", fmt.Errorf("render body %q: %w", name, err)
	}
	return sb.String(), bb.String(), nil
}
