package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/samvad-hq/board-monitor/internal/domain"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSNotifierPublishSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	notifier := &snsNotifier{
		id:       "topic-1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::board-reports",
		client:   client,
		log:      noopLogger{},
	}

	report := testReport(domain.BoardResult{Name: "sec", AddedItems: []string{"x"}})
	if err := notifier.Notify(context.Background(), report); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::board-reports" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["has_new"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "true" {
		t.Fatalf("has_new attribute missing or wrong: %#v", attr)
	}
	if attr.DataType == nil || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if client.input.Message == nil || !strings.Contains(aws.ToString(client.input.Message), `"name":"sec"`) {
		t.Fatalf("Message missing board result: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSNotifierPublishError(t *testing.T) {
	notifier := &snsNotifier{
		id:       "topic-1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::board-reports",
		client:   &fakeSNSClient{err: errors.New("access denied")},
		log:      noopLogger{},
	}

	err := notifier.Notify(context.Background(), testReport())
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected publish error, got %v", err)
	}
}
