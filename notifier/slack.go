package notifier

import (
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

type slackNotifier struct {
	webHookURL string
}

func NewSlackNotifier(webHookURL string) Notifier {
	return &slackNotifier{webHookURL: webHookURL}
}

func (sn *slackNotifier) Name() string {
	return SlackNotifierName
}

func (sn *slackNotifier) Notify(slackData any) {
	switch data := slackData.(type) {
	case slack.WebhookMessage:
		if err := slack.PostWebhook(sn.webHookURL, &data); err != nil {
			logrus.Errorf("send message to slack is err: %v", err)
		}
	}
}
