package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type sender struct {
	name     string
	address  string
	password string
	host     string
	port     int
}

var client *sender

// Setup reads the mailer settings; without them outgoing mail is disabled
// and sends become logged no-ops.
func Setup() {
	address := viper.GetString("mailer.address")
	if len(address) == 0 {
		log.Warn().Msg("No mailer configured, outgoing email is disabled.")
		return
	}

	client = &sender{
		name:     viper.GetString("mailer.name"),
		address:  address,
		password: viper.GetString("mailer.password"),
		host:     viper.GetString("mailer.host"),
		port:     viper.GetInt("mailer.port"),
	}
}

func send(to, subject string, body []byte) error {
	if client == nil {
		log.Warn().Str("to", to).Str("subject", subject).Msg("Mailer is disabled, dropping email.")
		return nil
	}

	message := email.NewEmail()
	message.From = fmt.Sprintf("%s <%s>", client.name, client.address)
	message.To = []string{to}
	message.Subject = subject
	message.Text = body

	return message.Send(
		fmt.Sprintf("%s:%d", client.host, client.port),
		smtp.PlainAuth("", client.address, client.password, client.host),
	)
}

func SendPasswordReset(to, link string) error {
	body := fmt.Sprintf(
		"Someone requested a password reset for your DevLog account.\n\n"+
			"Open this link to choose a new password. It expires in one hour:\n\n%s\n\n"+
			"If this wasn't you, you can safely ignore this email.",
		link,
	)
	return send(to, "Reset your DevLog password", []byte(body))
}
