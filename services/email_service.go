package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/chathuri2/CrickInfo/config"
)

type EmailService interface {
	SendWelcomeEmail(to, username string) error
	SendPasswordResetEmail(to, username, token string) error
}

type smtpEmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &smtpEmailService{cfg: cfg}
}

func (s *smtpEmailService) SendWelcomeEmail(to, username string) error {
	subject := "Welcome to CrickInfo"
	body := fmt.Sprintf(
		"<h2>Welcome, %s!</h2>"+
			"<p>Your CrickInfo account has been created. You can now browse the player catalog, "+
			"build squads and generate smart suggestions for upcoming matches.</p>",
		username,
	)
	return s.sendEmail([]string{to}, subject, body)
}

func (s *smtpEmailService) SendPasswordResetEmail(to, username, token string) error {
	subject := "CrickInfo password reset"
	body := fmt.Sprintf(
		"<h2>Hello, %s</h2>"+
			"<p>A password reset was requested for your account. Use the token below within one hour:</p>"+
			"<p><b>%s</b></p>"+
			"<p>If you did not request a reset, you can ignore this message.</p>",
		username, token,
	)
	return s.sendEmail([]string{to}, subject, body)
}

func (s *smtpEmailService) sendEmail(to []string, subject, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS (port 465)
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("tls dial: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		// STARTTLS (port 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("starttls: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return nil
}
