package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type CanteenDecisionData struct {
	CanteenName string
	Owner       string
	Status      string
	Reason      string
}

type OrderConfirmationData struct {
	OrderCode   string
	CanteenName string
	Items       string
	TotalAmount float64
}

type ResetCodeData struct {
	Name string
	Code string
}

func sendMail(to, subject, tmplPath string, data any) {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("failed to load email template %s: %v", tmplPath, err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render email template %s: %v", tmplPath, err)
		return
	}

	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	port, _ := strconv.Atoi(portStr)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
	}
}

// SendCanteenDecisionEmail notifies a canteen owner of an approval or
// rejection (async, never blocks the request).
func SendCanteenDecisionEmail(to string, data CanteenDecisionData) {
	go sendMail(to, "Your canteen registration was "+data.Status, "templates/canteen_decision.html", data)
}

// SendOrderConfirmationEmail mails the customer a checkout summary.
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	go sendMail(to, "Order confirmation #"+data.OrderCode, "templates/order_confirmation.html", data)
}

// SendResetCodeEmail mails a single-use password reset code.
func SendResetCodeEmail(to string, data ResetCodeData) {
	go sendMail(to, "Your password reset code", "templates/reset_code.html", data)
}
