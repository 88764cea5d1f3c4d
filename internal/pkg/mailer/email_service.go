package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReport(toEmail, companyName string, sections map[string]string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// SendReport delivers a synthesized customer report. Sections arrive as
// heading -> HTML-safe body text in display order via the caller.
func (s *emailService) SendReport(toEmail, companyName string, sections map[string]string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Customer Analysis Report: %s", companyName))

	var body strings.Builder
	body.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	body.WriteString(fmt.Sprintf("<h2>Customer Analysis Report &mdash; %s</h2>", companyName))
	for _, heading := range []string{
		"Executive Summary",
		"Competitive Analysis",
		"Strategy (Short Term)",
		"Strategy (Long Term)",
		"Discovery Questions",
		"POC Recommendations",
		"Risks",
	} {
		text, ok := sections[heading]
		if !ok || text == "" {
			continue
		}
		body.WriteString(fmt.Sprintf("<h3>%s</h3>", heading))
		body.WriteString(fmt.Sprintf("<p style=\"white-space: pre-line;\">%s</p>", text))
	}
	body.WriteString("</div>")

	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send report mail to %s: %w", toEmail, err)
	}
	return nil
}
