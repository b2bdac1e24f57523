package notifier

import (
	"strconv"

	"github.com/slack-go/slack"

	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/report"
)

// DigestCard lays a run digest out as a lark card.
func DigestCard(digest report.Digest) LarkCard {
	return LarkCard{
		Title: "Payload report run",
		ColumnSets: []LarkColumnSet{
			{Columns: []LarkColumn{
				{Name: "Files", Value: strconv.Itoa(digest.Files), Weight: 1},
				{Name: "Transactions", Value: strconv.Itoa(digest.Transactions), Weight: 1},
			}},
			{Name: "HR"},
			{Columns: []LarkColumn{
				{Name: "Reports", Value: strconv.Itoa(digest.Reports), Weight: 1},
				{Name: "Uncovered", Value: strconv.Itoa(digest.Uncovered), Weight: 1},
			}},
		},
	}
}

// DigestWebhook lays a run digest out as a slack webhook message. Runs with
// uncovered transactions post as warnings.
func DigestWebhook(digest report.Digest) slack.WebhookMessage {
	color := "good"
	if digest.Uncovered > 0 {
		color = "warning"
	}
	attachment := slack.Attachment{
		Title: "Payload report run",
		Color: color,
		Fields: []slack.AttachmentField{
			{Title: "Files", Value: strconv.Itoa(digest.Files), Short: true},
			{Title: "Transactions", Value: strconv.Itoa(digest.Transactions), Short: true},
			{Title: "Reports", Value: strconv.Itoa(digest.Reports), Short: true},
			{Title: "Uncovered", Value: strconv.Itoa(digest.Uncovered), Short: true},
		},
	}
	return slack.WebhookMessage{Attachments: []slack.Attachment{attachment}}
}

// NotifyDigest fans the digest out to every configured webhook.
func NotifyDigest(digest report.Digest) {
	if url := config.Conf.Notifier.LarkWebHook; url != "" {
		NewLarkNotifier(url).Notify(DigestCard(digest))
	}
	if url := config.Conf.Notifier.SlackWebHook; url != "" {
		NewSlackNotifier(url).Notify(DigestWebhook(digest))
	}
}
