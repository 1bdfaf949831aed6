package mailer

import (
	"fmt"

	"clinic-booking-server/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional clinic emails over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

// New creates a Mailer from the SMTP configuration.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendVerificationEmail sends the email-verification link to a new user.
func (m *Mailer) SendVerificationEmail(to, link string) error {
	body := fmt.Sprintf("Welcome! Please verify your email address by visiting: %s\n\nIgnore this email if you did not register.", link)
	return m.send(to, "Verify your email address", body)
}

// SendBookingConfirmation notifies a patient that their appointment is booked.
func (m *Mailer) SendBookingConfirmation(to, doctorName, date, timeSlot string) error {
	body := fmt.Sprintf("Your appointment with Dr. %s is confirmed for %s at %s.", doctorName, date, timeSlot)
	return m.send(to, "Appointment confirmation", body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.DefaultFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}
