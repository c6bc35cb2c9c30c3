package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
)

var verifyTemplate = template.Must(template.New("verify").Parse(`
<html>
  <body>
    <p>Hi {{.FullName}},</p>
    <p>Welcome to Snacks Dabba! Please verify your email to complete registration:</p>
    <p><a href="{{.ActionURL}}">Verify my email</a></p>
  </body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<html>
  <body>
    <p>Hi {{.FullName}},</p>
    <p>Welcome to Snacks Dabba. Happy snacking!</p>
    <p><a href="{{.ActionURL}}">Visit the store</a></p>
  </body>
</html>`))

type emailData struct {
	FullName  string
	ActionURL string
}

// SendVerificationEmail mails the activation link issued at
// registration time.
func SendVerificationEmail(to, fullName, token string) error {
	data := emailData{
		FullName:  fullName,
		ActionURL: fmt.Sprintf("%s/api/activate_email/?token=%s", os.Getenv("BACKEND_URL"), token),
	}
	return sendHTML(to, "Please verify your email", verifyTemplate, data)
}

// SendWelcomeEmail mails the post-activation / login greeting.
func SendWelcomeEmail(to, fullName string) error {
	data := emailData{
		FullName:  fullName,
		ActionURL: os.Getenv("FRONTEND_URL"),
	}
	return sendHTML(to, "Welcome to Snacks Dabba", welcomeTemplate, data)
}

func sendHTML(to, subject string, tmpl *template.Template, data emailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return err
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		// No mail server configured (local dev, tests): log instead.
		log.Printf("email to %s [%s] skipped, SMTP not configured", to, subject)
		return nil
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_USER")

	msg := bytes.Buffer{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())

	addr := host + ":" + port
	smtpAuth := smtp.PlainAuth("", from, os.Getenv("SMTP_PASSWORD"), host)
	return smtp.SendMail(addr, smtpAuth, from, []string{to}, msg.Bytes())
}
