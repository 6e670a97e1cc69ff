package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"receiptsplit-backend/config"
	"receiptsplit-backend/models"
	"receiptsplit-backend/utils"
)

type NotificationService struct {
	fcm *messaging.Client
}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{fcm: newMessagingClient()}
	}
	return notifService
}

func newMessagingClient() *messaging.Client {
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		logrus.Warn("⚠️  Firebase not configured, push notifications disabled: ", err)
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		logrus.Warn("⚠️  Firebase messaging unavailable: ", err)
		return nil
	}
	return client
}

// ============================================================
// PUSH NOTIFICATIONS via Firebase Cloud Messaging
// ============================================================

func (ns *NotificationService) sendPush(fcmToken, title, body string, data map[string]string) {
	if ns.fcm == nil || fcmToken == "" {
		return
	}

	_, err := ns.fcm.Send(context.Background(), &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		logrus.Warn("⚠️  FCM send error: ", err)
		return
	}
	logrus.Debug("Push notification sent")
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail, toName, subject, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		logrus.Warnf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		logrus.Warn("⚠️  Email send error: ", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logrus.Infof("✅ Email sent to %s", toEmail)
	} else {
		logrus.Warnf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// ============================================================
// NOTIFICATION EVENTS
// ============================================================

// NotifySplitCompleted emails each member their share breakdown and pushes a
// summary to the owner's device. Members without an email are skipped.
func (ns *NotificationService) NotifySplitCompleted(split models.Split, totals []models.MemberTotal, membersByID map[string]models.Member, owner models.User) {
	currency := owner.Currency
	if currency == "" {
		currency = "CAD"
	}

	for _, total := range totals {
		member, ok := membersByID[total.MemberID.String()]
		if !ok || member.Email == "" {
			continue
		}

		subject := fmt.Sprintf("Your share of %s: %s", split.Name, utils.FormatCurrency(total.Total, currency))
		htmlBody := buildShareEmailHTML(member.Name, split.Name, total, currency)
		ns.sendEmail(member.Email, member.Name, subject, htmlBody)
	}

	ns.sendPush(owner.FCMToken,
		fmt.Sprintf("%s is ready", split.Name),
		fmt.Sprintf("Totals for %d members have been sent out", len(totals)),
		map[string]string{
			"type":     "split_completed",
			"split_id": split.ID.String(),
		})
}

// NotifyMemberPaid pushes to the owner when a member settles up.
func (ns *NotificationService) NotifyMemberPaid(split models.Split, member models.Member, amount float64, owner models.User) {
	currency := owner.Currency
	if currency == "" {
		currency = "CAD"
	}

	ns.sendPush(owner.FCMToken,
		fmt.Sprintf("%s paid up", member.Name),
		fmt.Sprintf("%s settled %s on %s", member.Name, utils.FormatCurrency(amount, currency), split.Name),
		map[string]string{
			"type":     "member_paid",
			"split_id": split.ID.String(),
		})
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

var shareEmailTemplate = template.Must(template.New("share").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #A0826D; margin-top: 0;">🧾 Your Share</h2>
		<p>Hi <strong>{{.MemberName}}</strong>,</p>
		<p>Here is your share of <strong>{{.SplitName}}</strong>:</p>
		<div style="background: #f8f9fa; border-radius: 8px; padding: 16px; margin: 16px 0;">
			{{range .Items}}<p style="margin: 4px 0; color: #666;">{{.Name}}: {{.Amount}}</p>
			{{end}}
			<p style="margin: 4px 0; color: #666;">Subtotal: {{.Subtotal}}</p>
			<p style="margin: 4px 0; color: #666;">Tax: {{.Tax}}</p>
			<p style="margin: 4px 0; color: #e53e3e; font-size: 18px;"><strong>Total: {{.Total}}</strong></p>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— {{.AppName}}</p>
	</div>
</body>
</html>`))

func buildShareEmailHTML(memberName, splitName string, total models.MemberTotal, currency string) string {
	type line struct {
		Name   string
		Amount string
	}
	lines := make([]line, len(total.Items))
	for i, item := range total.Items {
		lines[i] = line{Name: item.Name, Amount: utils.FormatCurrency(item.Amount, currency)}
	}

	var buf bytes.Buffer
	shareEmailTemplate.Execute(&buf, map[string]interface{}{
		"MemberName": memberName,
		"SplitName":  splitName,
		"Items":      lines,
		"Subtotal":   utils.FormatCurrency(total.Subtotal, currency),
		"Tax":        utils.FormatCurrency(total.Tax, currency),
		"Total":      utils.FormatCurrency(total.Total, currency),
		"AppName":    config.AppConfig.AppName,
	})
	return buf.String()
}
