package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/iamspiddy/auto-yield-profits-sub001/config"

	"github.com/shopspring/decimal"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	if config.AppConfig == nil || config.AppConfig.EmailSender == "" {
		log.Println("Email sender not configured, skipping email:", subject)
		return nil
	}

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Auto Yield <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendInvestmentMaturedEmail notifies a user that an investment has been
// paid out to their wallet balance
func SendInvestmentMaturedEmail(email, name, orderID string, payout decimal.Decimal) {
	subject := "Your Investment Has Matured!"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Investment Matured</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #16a34a;">Investment Matured</h2>
        <p>Dear ` + name + `,</p>
        <p>Your investment <strong>` + orderID + `</strong> has reached maturity.</p>
        <p>A total of <strong>` + payout.StringFixed(2) + `</strong> (principal plus profit) has been released to your withdrawable balance.</p>
        <p>You can view the payout in your transaction history or place a new investment right away.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated notification from Auto Yield.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}

// SendDepositApprovedEmail notifies a user that their deposit was credited
func SendDepositApprovedEmail(email, name string, amount decimal.Decimal) {
	subject := "Your Deposit Has Been Approved"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Deposit Approved</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Deposit Approved</h2>
        <p>Dear ` + name + `,</p>
        <p>Your deposit of <strong>` + amount.StringFixed(2) + `</strong> has been approved and credited to your wallet balance.</p>
        <p>You can now invest in any of our plans.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated notification from Auto Yield.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}
